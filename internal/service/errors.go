package service

import (
	"errors"
)

// ErrInvalidInput matches every InputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports caller input the services refuse to store.
// Its message is safe to show to users.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(err error) error {
	return &InputError{Err: err}
}
