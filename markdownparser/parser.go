package markdownparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// DefaultLanguages are the fence languages treated as Lisp source
var DefaultLanguages = []string{"scheme", "church", "lisp"}

// Document represents a literate markdown chapter
type Document struct {
	Metadata map[string]any
	Blocks   []CodeBlock
}

// CodeBlock is a fenced code block in one of the requested languages
type CodeBlock struct {
	Language  string
	Source    string
	StartLine int // Line number of the first source line in the markdown file
}

// Parse reads a markdown document and collects its fenced code blocks whose
// language is one of languages (case-insensitive). An empty list accepts
// every fenced block that names a language.
func Parse(reader io.Reader, languages []string) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, consumedLines, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	source := []byte(body)
	doc := md.Parser().Parse(text.NewReader(source))

	document := &Document{
		Metadata: frontMatter,
		Blocks:   make([]CodeBlock, 0),
	}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		language := strings.ToLower(string(block.Language(source)))
		if !acceptsLanguage(languages, language) {
			return ast.WalkSkipChildren, nil
		}

		code, offset := extractCodeBlockContent(block, source)

		startLine := 0
		if offset >= 0 {
			startLine = 1 + consumedLines + bytes.Count(source[:offset], []byte("\n"))
		}

		document.Blocks = append(document.Blocks, CodeBlock{
			Language:  language,
			Source:    code,
			StartLine: startLine,
		})

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	return document, nil
}

// QuoteShorthand reports the quote_shorthand front matter setting, if any
func (d *Document) QuoteShorthand() (value bool, ok bool) {
	raw, exists := d.Metadata["quote_shorthand"]
	if !exists {
		return false, false
	}

	value, ok = raw.(bool)

	return value, ok
}

func acceptsLanguage(languages []string, language string) bool {
	if language == "" {
		return false
	}

	if len(languages) == 0 {
		return true
	}

	return slices.ContainsFunc(languages, func(l string) bool {
		return strings.EqualFold(l, language)
	})
}

// extractCodeBlockContent joins the block lines and returns the byte offset
// of the first one, or -1 for an empty block
func extractCodeBlockContent(block *ast.FencedCodeBlock, source []byte) (string, int) {
	lines := block.Lines()
	if lines.Len() == 0 {
		return "", -1
	}

	var sb strings.Builder

	for i := range lines.Len() {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}

	return sb.String(), lines.At(0).Start
}
