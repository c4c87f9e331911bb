package matrix

import "errors"

var (
	ErrInvalidTarget    = errors.New("invalid target")
	ErrIndexOutOfRange  = errors.New("target index out of range")
	ErrInvalidSelector  = errors.New("invalid target selector")
	ErrInvalidMatrixDoc = errors.New("invalid matrix document")
)
