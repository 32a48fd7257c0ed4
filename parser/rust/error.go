package rust

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
)

// ParseError is a front-end failure: the file cannot be turned into a
// declaration tree. It wraps errors.ErrFrontend.
type ParseError struct {
	Path    string
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap lets errors.Is(err, errors.ErrFrontend) match.
func (e *ParseError) Unwrap() error {
	return errors.ErrFrontend
}

func newParseError(path string, pos Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Path: path, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
