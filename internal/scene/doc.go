// Package scene generates body descriptors for procedural physics scenes.
//
// Everything here is a pure function of its inputs (plus an explicit
// *rand.Rand where randomness is involved). The output is a list of
// [BodySpec] values that a world.World turns into engine bodies:
//
//   - [Pegs]: brick-laid lattice of static circles
//   - [Compound], [Cross], [Cluster]: rigid unions of primitive parts
//   - [Boundary]: floor and side walls as one static compound
//   - [Scatter]: randomly placed, sized and colored free circles
//   - [Ball]: the single bouncy ball of the peg board
//
// Coordinates use the canvas convention: origin top-left, y pointing down.
//
// Configuration problems are returned as *[ConfigError] values wrapping
// [ErrInvalidConfig], so callers can reject a scene before the loop starts.
package scene
