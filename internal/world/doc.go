// Package world binds scene descriptors to the Chipmunk2D engine
// (github.com/jakecoffman/cp).
//
// A [World] owns one engine space. Every body added through [World.Add]
// gets a stable id, keeps its parts queryable, and carries per-part render
// state that collision handlers may repaint:
//
//	w := world.New(world.DefaultOptions())
//	body, _ := w.Add(spec)
//	w.On(world.EventCollisionStart, func(ev world.CollisionEvent) { ... })
//	w.Step(1.0 / 60.0)
//
// # Events
//
// Engine begin/separate callbacks only buffer pairs. After each step the
// buffered pairs are delivered as at most one [EventCollisionStart] batch
// and one [EventCollisionEnd] batch, so handlers run once per step.
//
// # Thread Safety
//
// A World is NOT thread-safe. It is populated before the loop starts and
// afterwards touched only by the goroutine that steps it.
package world
