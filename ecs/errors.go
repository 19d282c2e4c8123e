package ecs

import "errors"

var (
	// ErrNotRegistered is returned when a game object, component or system is missing
	ErrNotRegistered = errors.New("not registered with the registry")
	// ErrAlreadyRegistered is returned when a system type is added twice
	ErrAlreadyRegistered = errors.New("already registered with the registry")
)
