package core

import "errors"

// ErrInvalidState marks a wiring bug in the surrounding game: indexing a
// waypoint that does not exist, ticking an actor without health, and so on.
// It is never a runtime data condition.
var ErrInvalidState = errors.New("invalid state")
