package intermediate

import (
	"io"

	"github.com/beevik/etree"
	"github.com/shibukawa/sexpjs/sexp"
)

// WriteXML writes the forest as <forest> with nested <list> and <atom>
// elements.
func WriteXML(w io.Writer, forest []*sexp.Node, pretty bool) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("forest")
	for _, n := range forest {
		appendXMLNode(root, n)
	}

	if pretty {
		doc.Indent(2)
	}

	_, err := doc.WriteTo(w)

	return err
}

func appendXMLNode(parent *etree.Element, n *sexp.Node) {
	if n.IsAtom() {
		parent.CreateElement("atom").SetText(n.Text)
		return
	}

	list := parent.CreateElement("list")
	for _, child := range n.List {
		appendXMLNode(list, child)
	}
}

// ReadXML parses a document written by WriteXML back into a forest
func ReadXML(r io.Reader) ([]*sexp.Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}

	root := doc.SelectElement("forest")
	if root == nil {
		return nil, ErrNoForestElement
	}

	forest := make([]*sexp.Node, 0, len(root.ChildElements()))
	for _, elem := range root.ChildElements() {
		n, err := fromXMLElement(elem)
		if err != nil {
			return nil, err
		}

		forest = append(forest, n)
	}

	return forest, nil
}

func fromXMLElement(elem *etree.Element) (*sexp.Node, error) {
	switch elem.Tag {
	case "atom":
		return sexp.Atom(elem.Text()), nil
	case "list":
		children := make([]*sexp.Node, 0, len(elem.ChildElements()))
		for _, child := range elem.ChildElements() {
			n, err := fromXMLElement(child)
			if err != nil {
				return nil, err
			}

			children = append(children, n)
		}

		return sexp.List(children...), nil
	default:
		return nil, ErrUnexpectedElement
	}
}
