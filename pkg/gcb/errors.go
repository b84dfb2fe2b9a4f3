package gcb

import "errors"

var (
	ErrInvalidWord    = errors.New("invalid gcode word")
	ErrUnclosedParens = errors.New("unclosed parenthesized comment")
)
