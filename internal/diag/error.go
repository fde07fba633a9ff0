package diag

import (
	"errors"
	"fmt"

	"salc/internal/source"
)

// Error is a fatal compiler diagnostic travelling through the Go error channel.
// The checker and the code generator stop at the first one.
type Error struct {
	Diagnostic
	Pos source.LineCol
}

// NewFatal builds an Error; fs may be nil, then Pos stays zero.
func NewFatal(fs *source.FileSet, code Code, primary source.Span, msg string) *Error {
	e := &Error{Diagnostic: NewError(code, primary, msg)}
	if fs != nil && int(primary.File) < fs.Len() {
		e.Pos = fs.Position(primary)
	}
	return e
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, col %d)", e.Code.ID(), e.Message, e.Pos.Line, e.Pos.Col)
}

// Row and Col expose the 1-based position of the primary span.
func (e *Error) Row() uint32 { return e.Pos.Line }
func (e *Error) Col() uint32 { return e.Pos.Col }

// Category classifies the failure.
func (e *Error) Category() Category { return e.Code.Category() }

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
