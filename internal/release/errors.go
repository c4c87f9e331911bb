package release

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid release file")
)
