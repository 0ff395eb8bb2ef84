package tokenizer

import (
	"errors"
	"strconv"
)

// Sentinel errors
var (
	ErrUnterminatedString = errors.New("unterminated string literal")
)

// TokenType represents the type of a token
type TokenType int

const (
	// DELIMITER is one of ( ) [ ] ' , @
	DELIMITER TokenType = iota
	// STRING is a double quoted literal, quotes included
	STRING
	// SYMBOL is a symbol or number candidate
	SYMBOL
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case DELIMITER:
		return "DELIMITER"
	case STRING:
		return "STRING"
	case SYMBOL:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// Token is a slice of the source text plus the byte offset where it starts.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + "@" + strconv.Itoa(t.Offset) + ": " + t.Value
}

// Is reports whether the token is the given delimiter.
func (t Token) Is(delimiter byte) bool {
	return t.Type == DELIMITER && len(t.Value) == 1 && t.Value[0] == delimiter
}
