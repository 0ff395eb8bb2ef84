package tokenizer

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/alecthomas/assert/v2"
)

func values(tokens []Token) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, token.Value)
	}

	return result
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := Tokenize("")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(tokens))

	tokens, err = Tokenize("  \n\t ; only a comment")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(tokens))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "define with string",
			input:    `(define a "foo")`,
			expected: []string{"(", "define", "a", `"foo"`, ")"},
		},
		{
			name:     "quote shorthand list",
			input:    "(define foo '(1 2 3))",
			expected: []string{"(", "define", "foo", "'", "(", "1", "2", "3", ")", ")"},
		},
		{
			name:     "all delimiters",
			input:    "()[]',@",
			expected: []string{"(", ")", "[", "]", "'", ",", "@"},
		},
		{
			name:     "delimiters terminate symbols",
			input:    "a(b)c[d]e'f,g@h",
			expected: []string{"a", "(", "b", ")", "c", "[", "d", "]", "e", "'", "f", ",", "g", "@", "h"},
		},
		{
			name:     "comment to end of line",
			input:    "(a ; comment (ignored)\n b)",
			expected: []string{"(", "a", "b", ")"},
		},
		{
			name:     "comment ends at carriage return",
			input:    "a;x\rb",
			expected: []string{"a", "b"},
		},
		{
			name:     "comment terminates symbol",
			input:    "abc;def",
			expected: []string{"abc"},
		},
		{
			name:     "string terminates symbol",
			input:    `abc"def"`,
			expected: []string{"abc", `"def"`},
		},
		{
			name:     "escaped quote in string",
			input:    `"a\"b"`,
			expected: []string{`"a"b"`},
		},
		{
			name:     "string keeps delimiters and comment markers",
			input:    `"(a ; b)"`,
			expected: []string{`"(a ; b)"`},
		},
		{
			name:     "numbers and punctuation symbols",
			input:    "-12 3.5 +",
			expected: []string{"-12", "3.5", "+"},
		},
		{
			name:     "unicode symbol",
			input:    "(λ x)",
			expected: []string{"(", "λ", "x", ")"},
		},
		{
			name:     "mixed whitespace",
			input:    "a\tb\r\nc d",
			expected: []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, values(tokens))
		})
	}
}

func TestTokenTypesAndOffsets(t *testing.T) {
	tokens, err := Tokenize(`(define a "foo")`)
	assert.NoError(t, err)

	expected := []Token{
		{Type: DELIMITER, Value: "(", Offset: 0},
		{Type: SYMBOL, Value: "define", Offset: 1},
		{Type: SYMBOL, Value: "a", Offset: 8},
		{Type: STRING, Value: `"foo"`, Offset: 10},
		{Type: DELIMITER, Value: ")", Offset: 15},
	}
	assert.Equal(t, expected, tokens)
	assert.True(t, tokens[0].Is('('))
	assert.False(t, tokens[1].Is('('))
	assert.Equal(t, "STRING@10: \"foo\"", tokens[3].String())
}

func TestUnterminatedString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{name: "no closing quote", input: `(a "foo`, offset: 3},
		{name: "escaped closing quote", input: `"foo\"`, offset: 0},
		{name: "lone quote", input: `"`, offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			assert.IsError(t, err, ErrUnterminatedString)

			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.offset, syntaxErr.Offset)
		})
	}
}

func TestIteratorEarlyTermination(t *testing.T) {
	tokenizer := NewTokenizer("(a b c d e f)")

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++
		if count >= 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestIteratorStopsAtError(t *testing.T) {
	var got []string
	var lastErr error

	for token, err := range NewTokenizer(`a b "c`).Tokens() {
		if err != nil {
			lastErr = err
			continue
		}

		got = append(got, token.Value)
	}

	assert.Equal(t, []string{"a", "b"}, got)
	assert.IsError(t, lastErr, ErrUnterminatedString)
}

func TestTokensCoverNonWhitespace(t *testing.T) {
	inputs := []string{
		"(define (f x) (* x x))",
		"  (a   b)\n\n(c [d] 'e ,f @g)  ",
		"(map 'x '(1 2 3))",
	}

	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		assert.NoError(t, err)
		assert.Equal(t, strip(input), strings.Join(values(tokens), ""))

		// tokens never overlap and appear in source order
		end := 0
		for _, token := range tokens {
			assert.True(t, token.Offset >= end)
			assert.Equal(t, token.Value, input[token.Offset:token.Offset+len(token.Value)])
			end = token.Offset + len(token.Value)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "(define foo '(1 2 \"x\\\"y\"))"
	first, err := Tokenize(input)
	assert.NoError(t, err)

	second, err := Tokenize(input)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
