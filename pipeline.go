package sexpjs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shibukawa/sexpjs/compiler"
	"github.com/shibukawa/sexpjs/markdownparser"
	"github.com/shibukawa/sexpjs/sexp"
	"github.com/shibukawa/sexpjs/tokenizer"
)

// Pipeline runs tokenize, read and compile over inputs with one rule table.
// A Pipeline is immutable once built and may be shared between goroutines.
type Pipeline struct {
	config *Config
	rules  *compiler.RuleTable
}

// LocatedToken is a token together with its line and column in the input
type LocatedToken struct {
	tokenizer.Token
	Pos tokenizer.Position
}

// unit is one piece of Lisp source: a whole file or one markdown block
type unit struct {
	label          string
	source         string
	firstLine      int
	quoteShorthand bool
}

// NewPipeline builds the rule table described by config. A nil config means
// the defaults.
func NewPipeline(config *Config) (*Pipeline, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	options, err := config.CompilerOptions()
	if err != nil {
		return nil, err
	}

	rules, err := compiler.NewTable(options, config.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule table: %w", err)
	}

	return &Pipeline{config: config, rules: rules}, nil
}

// Rules returns the rule table in priority order
func (p *Pipeline) Rules() *compiler.RuleTable {
	return p.rules
}

// Tokens tokenizes Lisp source
func (p *Pipeline) Tokens(label, source string) ([]LocatedToken, error) {
	return p.sourceUnit(label, source).tokens()
}

// Parse reads Lisp source into a forest
func (p *Pipeline) Parse(label, source string) ([]*sexp.Node, error) {
	return p.sourceUnit(label, source).read()
}

// Convert compiles Lisp source into one JavaScript line per top-level
// expression
func (p *Pipeline) Convert(label, source string) ([]string, error) {
	return p.convertUnits([]unit{p.sourceUnit(label, source)})
}

// ConvertDocument compiles every Lisp block of a markdown document, in
// document order
func (p *Pipeline) ConvertDocument(label string, content []byte) ([]string, error) {
	units, err := p.documentUnits(label, content)
	if err != nil {
		return nil, err
	}

	return p.convertUnits(units)
}

// ParseDocument reads every Lisp block of a markdown document into a single
// forest
func (p *Pipeline) ParseDocument(label string, content []byte) ([]*sexp.Node, error) {
	units, err := p.documentUnits(label, content)
	if err != nil {
		return nil, err
	}

	forest := make([]*sexp.Node, 0)

	for _, u := range units {
		nodes, err := u.read()
		if err != nil {
			return nil, err
		}

		forest = append(forest, nodes...)
	}

	return forest, nil
}

// TokensDocument tokenizes every Lisp block of a markdown document
func (p *Pipeline) TokensDocument(label string, content []byte) ([]LocatedToken, error) {
	units, err := p.documentUnits(label, content)
	if err != nil {
		return nil, err
	}

	tokens := make([]LocatedToken, 0)

	for _, u := range units {
		unitTokens, err := u.tokens()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, unitTokens...)
	}

	return tokens, nil
}

// ConvertFile reads path and converts it. Files ending in .md are treated as
// literate markdown.
func (p *Pipeline) ConvertFile(path string) ([]string, error) {
	content, err := readInput(path)
	if err != nil {
		return nil, err
	}

	if IsMarkdown(path) {
		return p.ConvertDocument(path, content)
	}

	return p.Convert(path, string(content))
}

// ParseFile reads path into a forest
func (p *Pipeline) ParseFile(path string) ([]*sexp.Node, error) {
	content, err := readInput(path)
	if err != nil {
		return nil, err
	}

	if IsMarkdown(path) {
		return p.ParseDocument(path, content)
	}

	return p.Parse(path, string(content))
}

// TokensFile tokenizes path
func (p *Pipeline) TokensFile(path string) ([]LocatedToken, error) {
	content, err := readInput(path)
	if err != nil {
		return nil, err
	}

	if IsMarkdown(path) {
		return p.TokensDocument(path, content)
	}

	return p.Tokens(path, string(content))
}

// IsMarkdown reports whether path names a markdown file
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrMissingArgument
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputFileNotExist, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return content, nil
}

func (p *Pipeline) sourceUnit(label, source string) unit {
	return unit{
		label:          label,
		source:         source,
		firstLine:      1,
		quoteShorthand: p.config.QuoteShorthandEnabled(),
	}
}

func (p *Pipeline) documentUnits(label string, content []byte) ([]unit, error) {
	doc, err := markdownparser.Parse(bytes.NewReader(content), p.config.Markdown.Languages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	quoteShorthand := p.config.QuoteShorthandEnabled()
	if value, ok := doc.QuoteShorthand(); ok {
		quoteShorthand = value
	}

	units := make([]unit, 0, len(doc.Blocks))

	for _, block := range doc.Blocks {
		units = append(units, unit{
			label:          label,
			source:         block.Source,
			firstLine:      max(block.StartLine, 1),
			quoteShorthand: quoteShorthand,
		})
	}

	return units, nil
}

func (p *Pipeline) convertUnits(units []unit) ([]string, error) {
	lines := make([]string, 0)

	for _, u := range units {
		forest, err := u.read()
		if err != nil {
			return nil, err
		}

		unitLines, err := compiler.CompileAll(forest, p.rules)
		if err != nil {
			return nil, u.locate(err)
		}

		lines = append(lines, unitLines...)
	}

	return lines, nil
}

func (u unit) tokens() ([]LocatedToken, error) {
	tokens, err := tokenizer.Tokenize(u.source)
	if err != nil {
		return nil, u.locate(err)
	}

	index := tokenizer.NewPositionIndex(u.source)
	located := make([]LocatedToken, 0, len(tokens))

	for _, token := range tokens {
		located = append(located, LocatedToken{Token: token, Pos: u.shift(index.Locate(token.Offset))})
	}

	return located, nil
}

func (u unit) read() ([]*sexp.Node, error) {
	tokens, err := tokenizer.Tokenize(u.source)
	if err != nil {
		return nil, u.locate(err)
	}

	forest, err := sexp.Read(tokens, sexp.ReadOptions{QuoteShorthand: u.quoteShorthand})
	if err != nil {
		return nil, u.locate(err)
	}

	return forest, nil
}

// locate attaches label:line:col to syntax and unmatched-expression errors
func (u unit) locate(err error) error {
	var syntaxErr *tokenizer.SyntaxError
	if errors.As(err, &syntaxErr) {
		syntaxErr.Locate(u.label, tokenizer.NewPositionIndex(u.source))
		syntaxErr.Pos = u.shift(syntaxErr.Pos)

		return err
	}

	var unmatched *compiler.UnmatchedExpressionError
	if errors.As(err, &unmatched) && unmatched.Node.Offset >= 0 {
		pos := u.shift(tokenizer.NewPositionIndex(u.source).Locate(unmatched.Node.Offset))
		if u.label == "" {
			return fmt.Errorf("%s: %w", pos, err)
		}

		return fmt.Errorf("%s:%s: %w", u.label, pos, err)
	}

	return err
}

func (u unit) shift(pos tokenizer.Position) tokenizer.Position {
	pos.Line += u.firstLine - 1
	return pos
}
