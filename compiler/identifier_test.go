package compiler

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestIdentifierCase(t *testing.T) {
	tests := []struct {
		name     string
		c        IdentifierCase
		input    string
		expected string
	}{
		{name: "preserve keeps dashes", c: PreserveCase, input: "make-coin", expected: "make-coin"},
		{name: "camel", c: CamelCase, input: "make-coin", expected: "makeCoin"},
		{name: "camel multiple parts", c: CamelCase, input: "rejection-query-result", expected: "rejectionQueryResult"},
		{name: "camel keeps upper case", c: CamelCase, input: "parse-HTTP", expected: "parseHTTP"},
		{name: "camel without dash", c: CamelCase, input: "coin", expected: "coin"},
		{name: "camel leading dash", c: CamelCase, input: "-x", expected: "-x"},
		{name: "camel trailing dash", c: CamelCase, input: "x-", expected: "x-"},
		{name: "camel double dash", c: CamelCase, input: "a--b", expected: "a--b"},
		{name: "camel only dash", c: CamelCase, input: "-", expected: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.c.Convert(tt.input))
		})
	}
}

func TestParseIdentifierCase(t *testing.T) {
	c, err := ParseIdentifierCase("")
	assert.NoError(t, err)
	assert.Equal(t, PreserveCase, c)

	c, err = ParseIdentifierCase("camel")
	assert.NoError(t, err)
	assert.Equal(t, CamelCase, c)

	_, err = ParseIdentifierCase("snake")
	assert.IsError(t, err, ErrUnknownIdentifierCase)
}

func TestVarBindingUsesIdentifierCase(t *testing.T) {
	table := NewBaselineTable(Options{IdentifierCase: CamelCase})
	out, err := Compile(readOne(t, "(define my-list '(1))", true), table)
	assert.NoError(t, err)
	assert.Equal(t, "var myList = [1];", out)
}

func TestVarBindingKeepsDistinctNames(t *testing.T) {
	table := NewBaselineTable(Options{IdentifierCase: CamelCase})

	dashed, err := Compile(readOne(t, "(define -x 1)", true), table)
	assert.NoError(t, err)

	plain, err := Compile(readOne(t, "(define x 1)", true), table)
	assert.NoError(t, err)

	assert.Equal(t, "var -x = 1;", dashed)
	assert.Equal(t, "var x = 1;", plain)
}
