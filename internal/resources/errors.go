package resources

import "errors"

var (
	ErrResource    = errors.New("resource preparation failed")
	ErrHTTPStatus  = errors.New("unexpected HTTP status")
	ErrNotProduced = errors.New("command did not produce the resource")
)
