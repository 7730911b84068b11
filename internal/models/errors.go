package models

import "errors"

// Error kinds shared across the persistence gateway and the coordinator.
// Callers match them with errors.Is after unwrapping.
var (
	// ErrDuplicatePath is returned when registering a path that is
	// already on the shelf.
	ErrDuplicatePath = errors.New("project path already registered")

	// ErrNotFound is returned when an id or registry name is unknown.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for empty required fields before any
	// collaborator call is attempted.
	ErrValidation = errors.New("validation failed")
)
