package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters always stand alone as one-character tokens and terminate
// any symbol before them.
const Delimiters = "()[]',@\";"

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer splits Lisp source text into tokens
type Tokenizer struct {
	input string
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Tokenize returns all tokens of source, or the first error.
func Tokenize(source string) ([]Token, error) {
	return NewTokenizer(source).AllTokens()
}

// Tokens returns an iterator of tokens. Iteration stops after the first
// error; each call scans from the start of the input.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{input: t.input}

		for {
			token, ok, err := s.next()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !ok {
				return
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, len(t.input)/4)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// IsDelimiter reports whether r belongs to the delimiter set
func IsDelimiter(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(Delimiters, byte(r)) >= 0
}

type scanner struct {
	input string
	pos   int
}

// next returns the next token; ok is false at end of input
func (s *scanner) next() (token Token, ok bool, err error) {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])

		switch {
		case unicode.IsSpace(r):
			s.pos += size
		case r == ';':
			s.skipComment()
		case r == '"':
			return s.readString()
		case IsDelimiter(r):
			token = Token{Type: DELIMITER, Value: string(r), Offset: s.pos}
			s.pos++

			return token, true, nil
		default:
			return s.readSymbol(), true, nil
		}
	}

	return Token{}, false, nil
}

// skipComment skips up to, not including, the end of line
func (s *scanner) skipComment() {
	for s.pos < len(s.input) && s.input[s.pos] != '\n' && s.input[s.pos] != '\r' {
		s.pos++
	}
}

// readString reads a string literal. \" does not close the literal and
// is stored as a bare quote; the outer quotes are kept.
func (s *scanner) readString() (Token, bool, error) {
	start := s.pos

	var builder strings.Builder
	builder.WriteByte('"')

	i := start + 1
	for {
		if i >= len(s.input) {
			return Token{}, false, &SyntaxError{Err: ErrUnterminatedString, Offset: start}
		}

		if strings.HasPrefix(s.input[i:], `\"`) {
			builder.WriteByte('"')
			i += 2

			continue
		}

		c := s.input[i]
		i++

		if c == '"' {
			break
		}

		builder.WriteByte(c)
	}

	builder.WriteByte('"')
	s.pos = i

	return Token{Type: STRING, Value: builder.String(), Offset: start}, true, nil
}

// readSymbol reads up to the next whitespace or delimiter
func (s *scanner) readSymbol() Token {
	start := s.pos

	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if unicode.IsSpace(r) || IsDelimiter(r) {
			break
		}

		s.pos += size
	}

	return Token{Type: SYMBOL, Value: s.input[start:s.pos], Offset: start}
}
