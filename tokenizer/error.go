package tokenizer

import (
	"fmt"
)

// SyntaxError is a malformed-input failure located at a byte offset.
// Label and Pos are empty until a caller resolves the offset with a
// PositionIndex (see Locate).
type SyntaxError struct {
	Err    error
	Offset int
	Label  string
	Pos    Position
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}

	if e.Label == "" {
		return fmt.Sprintf("%d:%d: %v", e.Pos.Line, e.Pos.Column, e.Err)
	}

	return fmt.Sprintf("%s:%d:%d: %v", e.Label, e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Locate fills in Label and Pos from the index.
func (e *SyntaxError) Locate(label string, index *PositionIndex) {
	e.Label = label
	e.Pos = index.Locate(e.Offset)
}
