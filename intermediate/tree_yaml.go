package intermediate

import (
	"io"

	"github.com/shibukawa/sexpjs/sexp"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes the forest as a YAML sequence. Atoms are double quoted
// scalars so numbers and booleans keep their source text.
func WriteYAML(w io.Writer, forest []*sexp.Node) error {
	root := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if len(forest) > 0 {
		root.Style = 0
	}

	for _, n := range forest {
		root.Content = append(root.Content, toYAMLNode(n))
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(root); err != nil {
		return err
	}

	return encoder.Close()
}

func toYAMLNode(n *sexp.Node) *yaml.Node {
	if n.IsAtom() {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.DoubleQuotedStyle,
			Value: n.Text,
		}
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, child := range n.List {
		seq.Content = append(seq.Content, toYAMLNode(child))
	}

	return seq
}
