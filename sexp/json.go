package sexp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

type jsonFrame struct {
	items []*Node
	next  int
}

// EncodeJSON writes nodes as a JSON array, atoms as strings and lists as
// arrays. An empty indent gives compact output; otherwise the layout matches
// json.MarshalIndent(v, prefix, indent). Nesting is walked with an explicit
// stack, so depth is bounded by memory only.
func EncodeJSON(w io.Writer, nodes []*Node, prefix, indent string) error {
	bw := bufio.NewWriter(w)
	atoms := newAtomEncoder()

	newline := func(depth int) {
		if indent == "" {
			return
		}

		bw.WriteByte('\n')
		bw.WriteString(prefix)
		bw.WriteString(strings.Repeat(indent, depth))
	}

	bw.WriteByte('[')

	stack := []jsonFrame{{items: nodes}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.items) {
			if top.next > 0 {
				newline(len(stack) - 1)
			}

			bw.WriteByte(']')
			stack = stack[:len(stack)-1]

			continue
		}

		n := top.items[top.next]
		if top.next > 0 {
			bw.WriteByte(',')
		}

		top.next++
		newline(len(stack))

		switch {
		case n == nil:
			bw.WriteString("null")
		case n.IsList():
			bw.WriteByte('[')
			stack = append(stack, jsonFrame{items: n.List})
		default:
			text, err := atoms.encode(n.Text)
			if err != nil {
				return err
			}

			bw.Write(text)
		}
	}

	return bw.Flush()
}

// atomEncoder encodes strings without HTML escaping
type atomEncoder struct {
	buf     bytes.Buffer
	encoder *json.Encoder
}

func newAtomEncoder() *atomEncoder {
	a := &atomEncoder{}
	a.encoder = json.NewEncoder(&a.buf)
	a.encoder.SetEscapeHTML(false)

	return a
}

func (a *atomEncoder) encode(text string) ([]byte, error) {
	a.buf.Reset()
	if err := a.encoder.Encode(text); err != nil {
		return nil, err
	}

	// drop the newline Encode appends
	return bytes.TrimSuffix(a.buf.Bytes(), []byte("\n")), nil
}
