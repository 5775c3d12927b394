package world

import "github.com/jakecoffman/cp"

type EventType string

const (
	EventCollisionStart EventType = "collisionStart"
	EventCollisionEnd   EventType = "collisionEnd"
)

// Pair is two parts whose contact began or ended. For a compound body the
// part is the one actually touching.
type Pair struct {
	A, B *Part
}

// CollisionEvent is one batch of pairs collected during a single step.
type CollisionEvent struct {
	Type  EventType
	Step  int
	Time  float64
	Pairs []Pair
}

// Handler reacts to a collision batch. Handlers may change render state but
// must not mutate geometry, mass or constraints.
type Handler func(CollisionEvent)

// On registers h for t. Handlers run in registration order.
func (w *World) On(t EventType, h Handler) {
	w.handlers[t] = append(w.handlers[t], h)
}

// Emit delivers ev to every handler registered for its type.
func (w *World) Emit(ev CollisionEvent) {
	for _, h := range w.handlers[ev.Type] {
		h(ev)
	}
}

func (w *World) installCollisionHandler() {
	h := w.space.NewCollisionHandler(sceneCollisionType, sceneCollisionType)
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		w.record(&w.started, arb)
		return true
	}
	h.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		w.record(&w.ended, arb)
	}
}

func (w *World) record(buf *[]Pair, arb *cp.Arbiter) {
	sa, sb := arb.Shapes()
	a, okA := w.parts[sa]
	b, okB := w.parts[sb]
	if !okA || !okB {
		return
	}
	*buf = append(*buf, Pair{A: a, B: b})
}

// flush dispatches the batches buffered during the last step, start before end.
func (w *World) flush() {
	if len(w.started) > 0 {
		ev := CollisionEvent{Type: EventCollisionStart, Step: w.steps, Time: w.time, Pairs: w.started}
		w.started = nil
		w.Emit(ev)
	}
	if len(w.ended) > 0 {
		ev := CollisionEvent{Type: EventCollisionEnd, Step: w.steps, Time: w.time, Pairs: w.ended}
		w.ended = nil
		w.Emit(ev)
	}
}
