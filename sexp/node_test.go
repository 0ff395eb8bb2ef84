package sexp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNode_String(t *testing.T) {
	tests := []struct {
		name     string
		n        *Node
		expected string
	}{
		{name: "atom", n: Atom("abc"), expected: "abc"},
		{name: "empty list", n: List(), expected: "()"},
		{name: "nested", n: List(Atom("a"), List(Atom("b"), Atom(`"c"`)), List()), expected: `(a (b "c") ())`},
		{name: "nil", n: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.n.String())
		})
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	forest := []*Node{
		List(Atom("define"), Atom("a"), Atom(`"foo"`)),
		Atom("1"),
		List(),
		{Kind: KindList},
	}

	data, err := json.Marshal(forest)
	assert.NoError(t, err)
	assert.Equal(t, `[["define","a","\"foo\""],"1",[],[]]`, string(data))
}

func TestEncodeJSON(t *testing.T) {
	forest := []*Node{List(Atom("a"), List()), Atom(`"<b>"`)}

	var buf bytes.Buffer
	assert.NoError(t, EncodeJSON(&buf, forest, "", ""))
	assert.Equal(t, `[["a",[]],"\"<b>\""]`, buf.String())

	buf.Reset()
	assert.NoError(t, EncodeJSON(&buf, forest, ">", "  "))
	assert.Equal(t, "[\n>  [\n>    \"a\",\n>    []\n>  ],\n>  \"\\\"<b>\\\"\"\n>]", buf.String())
}

func TestEncodeJSONDeepNesting(t *testing.T) {
	const depth = 100000

	n := Atom("x")
	for range depth {
		n = List(n)
	}

	var buf bytes.Buffer
	assert.NoError(t, EncodeJSON(&buf, []*Node{n}, "", ""))
	assert.True(t, buf.String() == strings.Repeat("[", depth+1)+`"x"`+strings.Repeat("]", depth+1))
}

func TestNode_Accessors(t *testing.T) {
	n := List(Atom("quote"), Atom("1"), List(Atom("2")))

	assert.True(t, n.IsList())
	assert.False(t, n.IsAtom())
	assert.Equal(t, 3, n.Len())
	assert.Equal(t, "quote", n.Head())
	assert.Equal(t, 2, len(n.Tail()))
	assert.True(t, n.List[0].IsAtomText("quote"))
	assert.Equal(t, "list", n.Kind.String())

	nested := List(List(Atom("a")))
	assert.Equal(t, "", nested.Head())
	assert.Equal(t, 0, List().Len())
	assert.Zero(t, List().Tail())

	atom := Atom(`"x"`)
	assert.True(t, atom.IsQuoted())
	assert.False(t, Atom(`"`).IsQuoted())
	assert.False(t, Atom("x").IsQuoted())
	assert.Equal(t, 0, atom.Len())
	assert.Equal(t, "", atom.Head())
}

func TestNode_Equal(t *testing.T) {
	a := List(Atom("a"), List(Atom("b")))
	b := &Node{Kind: KindList, Offset: 7, List: []*Node{
		{Kind: KindAtom, Text: "a", Offset: 8},
		{Kind: KindList, Offset: 10, List: []*Node{{Kind: KindAtom, Text: "b"}}},
	}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(List(Atom("a"))))
	assert.False(t, a.Equal(Atom("a")))
	assert.False(t, Atom("a").Equal(Atom("b")))
	assert.False(t, a.Equal(nil))

	var nilNode *Node
	assert.True(t, nilNode.Equal(nil))
}
