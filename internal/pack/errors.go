package pack

import "errors"

var (
	ErrPackaging = errors.New("packaging failed")
	ErrChecksum  = errors.New("checksum failed")
)
