package toolchain

import "errors"

var (
	ErrCompile  = errors.New("compilation failed")
	ErrCompress = errors.New("compression failed")
	ErrCommand  = errors.New("command failed")
)
