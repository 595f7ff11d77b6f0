package config

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")
	// ErrNothingToDo is returned when only help or version was requested.
	ErrNothingToDo = errors.New("nothing to do")
)
