package entity

import "errors"

// Error kinds for domain rule violations. Callers match with errors.Is;
// specific failures wrap one of these so the HTTP layer can map them to a
// status code without knowing the rule that fired.
var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("conflict")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
