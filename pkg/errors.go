package marlinpost

import "errors"

var (
	ErrInvalidArguments = errors.New("invalid post-processor arguments")
	ErrNotAPath         = errors.New("object is not a path")
)
