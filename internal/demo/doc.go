// Package demo assembles the runnable scenes. Each scene populates a world
// from a config, attaches the pointer and the recolor handlers, and returns
// a session ready to be stepped.
package demo
