package sexp

import (
	"bytes"
	"strings"
)

// Kind tells atoms and lists apart
type Kind int

const (
	KindAtom Kind = iota
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Node is an atom or a list of nodes. Offset is the source offset of the
// atom token or of the opening paren, or -1 for synthesized nodes.
type Node struct {
	Kind
	Text   string
	List   []*Node
	Offset int
}

// Atom creates a synthesized atom node
func Atom(text string) *Node {
	return &Node{Kind: KindAtom, Text: text, Offset: -1}
}

// List creates a synthesized list node
func List(children ...*Node) *Node {
	if children == nil {
		children = make([]*Node, 0)
	}

	return &Node{Kind: KindList, List: children, Offset: -1}
}

func (n *Node) IsAtom() bool {
	return n != nil && n.Kind == KindAtom
}

func (n *Node) IsList() bool {
	return n != nil && n.Kind == KindList
}

// IsAtomText reports whether n is an atom with exactly the given text
func (n *Node) IsAtomText(text string) bool {
	return n.IsAtom() && n.Text == text
}

// Len returns the number of list elements, 0 for atoms
func (n *Node) Len() int {
	if !n.IsList() {
		return 0
	}

	return len(n.List)
}

// Head returns the text of the first element when it is an atom
func (n *Node) Head() string {
	if n.Len() == 0 || !n.List[0].IsAtom() {
		return ""
	}

	return n.List[0].Text
}

// Tail returns the list elements after the first
func (n *Node) Tail() []*Node {
	if n.Len() == 0 {
		return nil
	}

	return n.List[1:]
}

// IsQuoted reports whether n is an atom delimited by double quotes
func (n *Node) IsQuoted() bool {
	return n.IsAtom() && len(n.Text) >= 2 && n.Text[0] == '"' && n.Text[len(n.Text)-1] == '"'
}

// String returns the canonical (a b c) form
func (n *Node) String() string {
	var sb strings.Builder
	n.appendToBuilder(&sb)

	return sb.String()
}

func (n *Node) appendToBuilder(sb *strings.Builder) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindList:
		sb.WriteByte('(')
		for i, c := range n.List {
			if i > 0 {
				sb.WriteByte(' ')
			}
			c.appendToBuilder(sb)
		}
		sb.WriteByte(')')
	case KindAtom:
		sb.WriteString(n.Text)
	}
}

// MarshalJSON encodes atoms as strings and lists as arrays
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsAtom() {
		return newAtomEncoder().encode(n.Text)
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, n.List, "", ""); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Equal compares structure and text, ignoring offsets
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.Kind != other.Kind {
		return false
	}

	if n.Kind == KindAtom {
		return n.Text == other.Text
	}

	if len(n.List) != len(other.List) {
		return false
	}

	for i := range n.List {
		if !n.List[i].Equal(other.List[i]) {
			return false
		}
	}

	return true
}
