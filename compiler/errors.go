package compiler

import (
	"errors"
	"fmt"

	"github.com/shibukawa/sexpjs/sexp"
)

// Sentinel errors
var (
	// ErrUnmatchedExpression is returned when no rule applies to a node.
	ErrUnmatchedExpression = errors.New("unmatched expression")
	// ErrInvalidRule indicates a user-defined rule could not be built.
	ErrInvalidRule = errors.New("invalid rule definition")
	// ErrInvalidReplacement indicates a replacer produced something other than text.
	ErrInvalidReplacement = errors.New("replacer did not return a string")
	// ErrUnknownIdentifierCase indicates an unsupported identifier_case value.
	ErrUnknownIdentifierCase = errors.New("unknown identifier case")
)

// UnmatchedExpressionError carries the node no rule matched
type UnmatchedExpressionError struct {
	Node *sexp.Node
}

func (e *UnmatchedExpressionError) Error() string {
	return fmt.Sprintf("%v %s", ErrUnmatchedExpression, e.Node.String())
}

func (e *UnmatchedExpressionError) Unwrap() error {
	return ErrUnmatchedExpression
}
