package build

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid build options")
	ErrPanic          = errors.New("unexpected failure")
)
