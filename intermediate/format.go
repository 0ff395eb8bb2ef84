package intermediate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shibukawa/sexpjs/sexp"
)

// Sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported tree format")
	ErrNoForestElement   = errors.New("no forest element found")
	ErrUnexpectedElement = errors.New("unexpected element in forest")
)

// IntermediateFormat is the forest together with the source it came from
type IntermediateFormat struct {
	Source SourceInfo   `json:"source"`
	Forest []*sexp.Node `json:"forest"`
}

// SourceInfo represents source file information
type SourceInfo struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

// NewFormat creates a new intermediate format instance
func NewFormat() *IntermediateFormat {
	return &IntermediateFormat{Forest: make([]*sexp.Node, 0)}
}

// SetSource sets the source information
func (f *IntermediateFormat) SetSource(file, content string) {
	f.Source = SourceInfo{
		File:    file,
		Content: content,
	}
}

// SetForest sets the parsed forest
func (f *IntermediateFormat) SetForest(forest []*sexp.Node) {
	if forest == nil {
		forest = make([]*sexp.Node, 0)
	}

	f.Forest = forest
}

// WriteJSON writes the format, source included, as JSON
func (f *IntermediateFormat) WriteJSON(w io.Writer, pretty bool) error {
	prefix, indent, sep := "", "", ":"
	if pretty {
		prefix, indent, sep = "  ", "  ", ": "
	}

	var source bytes.Buffer

	encoder := json.NewEncoder(&source)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(prefix, indent)

	if err := encoder.Encode(f.Source); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("{")
	newline(bw, pretty, prefix)
	bw.WriteString(`"source"` + sep)
	bw.Write(bytes.TrimSuffix(source.Bytes(), []byte("\n")))
	bw.WriteString(",")
	newline(bw, pretty, prefix)
	bw.WriteString(`"forest"` + sep)

	// the forest goes through the stack based writer, not encoding/json
	if err := sexp.EncodeJSON(bw, f.Forest, prefix, indent); err != nil {
		return err
	}

	newline(bw, pretty, "")
	bw.WriteString("}\n")

	return bw.Flush()
}

func newline(w *bufio.Writer, pretty bool, prefix string) {
	if pretty {
		w.WriteString("\n" + prefix)
	}
}

// WriteJSON writes the bare forest: atoms as strings, lists as arrays
func WriteJSON(w io.Writer, forest []*sexp.Node, pretty bool) error {
	indent := ""
	if pretty {
		indent = "  "
	}

	if err := sexp.EncodeJSON(w, forest, "", indent); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

// Write dumps the forest in the named format: json, yaml or xml
func Write(w io.Writer, format string, forest []*sexp.Node, pretty bool) error {
	switch format {
	case "json":
		return WriteJSON(w, forest, pretty)
	case "yaml":
		return WriteYAML(w, forest)
	case "xml":
		return WriteXML(w, forest, pretty)
	default:
		return fmt.Errorf("%w: '%s': must be one of json, yaml, xml", ErrUnsupportedFormat, format)
	}
}
