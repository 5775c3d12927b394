package world_test

import (
	"github.com/jakecoffman/cp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plinko/internal/palette"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/world"
)

const dt = 1.0 / 60.0

func ballAt(pos cp.Vector, radius float64) scene.BodySpec {
	return scene.BodySpec{
		Label:    "ball",
		Position: pos,
		Parts:    []scene.PartSpec{scene.CirclePart(cp.Vector{}, radius, palette.Blue)},
		Material: scene.DefaultMaterial,
	}
}

func weightless() world.Options {
	opts := world.DefaultOptions()
	opts.Gravity = cp.Vector{}
	return opts
}

var _ = Describe("World", func() {
	var w *world.World

	BeforeEach(func() {
		w = world.New(world.DefaultOptions())
	})

	Describe("adding bodies", func() {
		It("gives a compound one identity with every part queryable", func() {
			spec, err := scene.Cluster("cluster", scene.ClusterConfig{
				Origin: cp.Vector{X: 100, Y: 100}, Spacing: 100, Radius: 20, Core: true,
			})
			Expect(err).NotTo(HaveOccurred())

			body, err := w.Add(spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(body.IsCompound()).To(BeTrue())
			Expect(body.Parts).To(HaveLen(len(spec.Parts)))

			found, ok := w.Body(body.ID)
			Expect(ok).To(BeTrue())
			Expect(found).To(BeIdenticalTo(body))
			for i, p := range body.Parts {
				Expect(p.Body()).To(BeIdenticalTo(body))
				Expect(p.Index).To(Equal(i))
			}
			Expect(body.Mass()).To(BeNumerically(">", 0))
		})

		It("keeps both cross bars centered on the body", func() {
			spec, err := scene.Cross("cross", cp.Vector{X: 300, Y: 100}, 100, palette.Red)
			Expect(err).NotTo(HaveOccurred())
			body, err := w.Add(spec)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 30; i++ {
				w.Step(dt)
			}
			for _, p := range body.Parts {
				Expect(p.WorldCenter().Distance(body.Position())).To(BeNumerically("<", 1e-6))
			}
			Expect(body.Parts[0].Corners()).To(HaveLen(4))
		})

		It("assigns distinct ids in insertion order", func() {
			a, err := w.Add(ballAt(cp.Vector{X: 100, Y: 100}, 10))
			Expect(err).NotTo(HaveOccurred())
			b, err := w.Add(ballAt(cp.Vector{X: 200, Y: 100}, 10))
			Expect(err).NotTo(HaveOccurred())

			Expect(a.ID).NotTo(Equal(b.ID))
			Expect(w.Bodies()).To(Equal([]*world.Body{a, b}))
		})

		It("rejects malformed geometry", func() {
			_, err := w.Add(ballAt(cp.Vector{}, 0))
			Expect(err).To(MatchError(world.ErrInvalidGeometry))

			_, err = w.Add(scene.BodySpec{Label: "empty"})
			Expect(err).To(MatchError(world.ErrInvalidGeometry))
			Expect(w.Bodies()).To(BeEmpty())
		})

		It("removes bodies once", func() {
			b, err := w.Add(ballAt(cp.Vector{X: 100, Y: 100}, 10))
			Expect(err).NotTo(HaveOccurred())

			Expect(w.Remove(b)).To(Succeed())
			Expect(w.Bodies()).To(BeEmpty())
			Expect(w.Remove(b)).To(MatchError(world.ErrForeignBody))
		})

		It("slows free bodies with air friction", func() {
			w = world.New(weightless())
			spec := ballAt(cp.Vector{X: 400, Y: 300}, 10)
			spec.Velocity = cp.Vector{X: 100}
			b, err := w.Add(spec)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 60; i++ {
				w.Step(dt)
			}
			Expect(b.Velocity().Length()).To(BeNumerically("~", 100*0.547, 2))
		})
	})

	Describe("collision events", func() {
		var floor, ball *world.Body

		BeforeEach(func() {
			spec, err := scene.Boundary(scene.DefaultCanvas, scene.DefaultWallThickness, palette.Gray)
			Expect(err).NotTo(HaveOccurred())
			floor, err = w.Add(spec)
			Expect(err).NotTo(HaveOccurred())
			ball, err = w.Add(ballAt(cp.Vector{X: 400, Y: 500}, 10))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports the touching parts once per step", func() {
			var batches []world.CollisionEvent
			w.On(world.EventCollisionStart, func(ev world.CollisionEvent) {
				batches = append(batches, ev)
			})

			for i := 0; i < 120 && len(batches) == 0; i++ {
				w.Step(dt)
			}

			Expect(batches).To(HaveLen(1))
			ev := batches[0]
			Expect(ev.Type).To(Equal(world.EventCollisionStart))
			Expect(ev.Step).To(Equal(w.Steps()))
			Expect(ev.Pairs).NotTo(BeEmpty())

			bodies := []*world.Body{ev.Pairs[0].A.Body(), ev.Pairs[0].B.Body()}
			Expect(bodies).To(ConsistOf(floor, ball))
			for _, p := range ev.Pairs {
				if p.A.Body() == floor {
					Expect(p.A.Index).To(Equal(0))
				}
				if p.B.Body() == floor {
					Expect(p.B.Index).To(Equal(0))
				}
			}
		})

		It("drops contacts of a removed body from later batches", func() {
			touching := false
			w.On(world.EventCollisionStart, func(world.CollisionEvent) { touching = true })
			for i := 0; i < 120 && !touching; i++ {
				w.Step(dt)
			}
			Expect(touching).To(BeTrue())

			var ended []world.Pair
			w.On(world.EventCollisionEnd, func(ev world.CollisionEvent) {
				ended = append(ended, ev.Pairs...)
			})
			Expect(w.Remove(ball)).To(Succeed())
			w.Step(dt)

			for _, pair := range ended {
				Expect(pair.A.Body()).NotTo(BeIdenticalTo(ball))
				Expect(pair.B.Body()).NotTo(BeIdenticalTo(ball))
			}
		})

		It("delivers synthetic events to handlers in registration order", func() {
			var order []string
			w.On(world.EventCollisionEnd, func(world.CollisionEvent) { order = append(order, "first") })
			w.On(world.EventCollisionEnd, func(world.CollisionEvent) { order = append(order, "second") })
			w.On(world.EventCollisionStart, func(world.CollisionEvent) { order = append(order, "start") })

			w.Emit(world.CollisionEvent{
				Type:  world.EventCollisionEnd,
				Pairs: []world.Pair{{A: ball.Parts[0], B: floor.Parts[0]}},
			})
			Expect(order).To(Equal([]string{"first", "second"}))
		})
	})

	Describe("pins", func() {
		It("holds a body at its initial distance from the anchor", func() {
			body, err := w.Add(ballAt(cp.Vector{X: 500, Y: 200}, 15))
			Expect(err).NotTo(HaveOccurred())

			pin, err := w.Pin("pin", body, cp.Vector{X: 400, Y: 100}, cp.Vector{}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Constraints()).To(ConsistOf(pin))

			for i := 0; i < 120; i++ {
				w.Step(dt)
			}
			a, b := pin.WorldAnchors()
			Expect(a.Distance(b)).To(BeNumerically("~", pin.Length, 2))
		})

		It("rejects stiffness outside [0,1] and foreign bodies", func() {
			body, err := w.Add(ballAt(cp.Vector{X: 500, Y: 200}, 15))
			Expect(err).NotTo(HaveOccurred())

			_, err = w.Pin("pin", body, cp.Vector{}, cp.Vector{}, 1.5)
			Expect(err).To(MatchError(world.ErrStiffness))

			other := world.New(world.DefaultOptions())
			_, err = other.Pin("pin", body, cp.Vector{}, cp.Vector{}, 0.5)
			Expect(err).To(MatchError(world.ErrForeignBody))
		})

		It("drops constraints of removed bodies", func() {
			body, err := w.Add(ballAt(cp.Vector{X: 500, Y: 200}, 15))
			Expect(err).NotTo(HaveOccurred())
			_, err = w.Pin("pin", body, cp.Vector{X: 400, Y: 100}, cp.Vector{}, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(w.Remove(body)).To(Succeed())
			Expect(w.Constraints()).To(BeEmpty())
		})
	})

	Describe("pointer", func() {
		var (
			p    *world.Pointer
			body *world.Body
		)

		BeforeEach(func() {
			w = world.New(weightless())
			var err error
			body, err = w.Add(ballAt(cp.Vector{X: 100, Y: 100}, 20))
			Expect(err).NotTo(HaveOccurred())
			p, err = world.NewPointer(w, world.DefaultPointerOptions())
			Expect(err).NotTo(HaveOccurred())
		})

		It("exists once per world and is invisible by default", func() {
			_, err := world.NewPointer(w, world.DefaultPointerOptions())
			Expect(err).To(MatchError(world.ErrPointerExists))
			Expect(p.Visible()).To(BeFalse())
			Expect(p.Options().Stiffness).To(Equal(0.2))
			Expect(w.Pointer()).To(BeIdenticalTo(p))
		})

		It("applies no force while idle", func() {
			p.Move(cp.Vector{X: 700, Y: 500})
			for i := 0; i < 60; i++ {
				w.Step(dt)
			}
			Expect(body.Position().Distance(cp.Vector{X: 100, Y: 100})).To(BeNumerically("<", 1e-6))
		})

		It("drags the grabbed body toward the pointer", func() {
			grabbed, ok := p.Press(cp.Vector{X: 105, Y: 100})
			Expect(ok).To(BeTrue())
			Expect(grabbed).To(BeIdenticalTo(body))
			Expect(p.Dragging()).To(BeTrue())

			p.Move(cp.Vector{X: 300, Y: 100})
			for i := 0; i < 120; i++ {
				w.Step(dt)
			}
			Expect(body.Position().X).To(BeNumerically(">", 250))

			p.Release()
			Expect(p.Dragging()).To(BeFalse())
			Expect(p.Target()).To(BeNil())
		})

		It("grabs a body even when a static peg is nearer", func() {
			pegs, err := scene.Pegs(scene.DefaultPegConfig)
			Expect(err).NotTo(HaveOccurred())
			peg := pegs[0]
			_, err = w.Add(peg)
			Expect(err).NotTo(HaveOccurred())

			r := scene.DefaultPegConfig.Radius
			neighbor, err := w.Add(ballAt(peg.Position.Add(cp.Vector{X: r + 13}), 10))
			Expect(err).NotTo(HaveOccurred())

			// One unit from the peg, two from the ball.
			grabbed, ok := p.Press(peg.Position.Add(cp.Vector{X: r + 1}))
			Expect(ok).To(BeTrue())
			Expect(grabbed).To(BeIdenticalTo(neighbor))
		})

		It("ignores presses on empty space and static bodies", func() {
			_, ok := p.Press(cp.Vector{X: 600, Y: 500})
			Expect(ok).To(BeFalse())

			pegs, err := scene.Pegs(scene.DefaultPegConfig)
			Expect(err).NotTo(HaveOccurred())
			_, err = w.Add(pegs[0])
			Expect(err).NotTo(HaveOccurred())
			_, ok = p.Press(pegs[0].Position)
			Expect(ok).To(BeFalse())
		})
	})
})
