package game

import "errors"

var (
	ErrActorNotFound = errors.New("actor not found")
	ErrPlayerDead    = errors.New("player is dead")
	ErrTargetDead    = errors.New("target is already dead")
	ErrBadPosition   = errors.New("position is not finite")
)
