package world

import "errors"

var (
	// ErrInvalidGeometry indicates a body spec the engine cannot accept.
	ErrInvalidGeometry = errors.New("world: invalid body geometry")

	// ErrForeignBody indicates a body that belongs to another world or was removed.
	ErrForeignBody = errors.New("world: body does not belong to this world")

	// ErrStiffness indicates a constraint stiffness outside [0,1].
	ErrStiffness = errors.New("world: stiffness must be within [0,1]")

	// ErrPointerExists indicates a second pointer constraint for one world.
	ErrPointerExists = errors.New("world: pointer constraint already attached")
)
