package compiler

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shibukawa/sexpjs/sexp"
)

type templateData struct {
	Node  *sexp.Node
	Head  string
	Text  string
	Items []*sexp.Node
	Tail  []*sexp.Node
}

// compileTemplate parses a text/template replacer. The compile and
// compileAll functions are bound per call to the table doing the dispatch.
func compileTemplate(name, source string) (Replacer, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs(nil, nil)).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}

	return func(n *sexp.Node, rules *RuleTable) (string, error) {
		bound, err := tmpl.Clone()
		if err != nil {
			return "", err
		}

		var compileErr error

		bound.Funcs(templateFuncs(rules, &compileErr))

		data := templateData{
			Node:  n,
			Head:  n.Head(),
			Text:  n.Text,
			Items: n.List,
			Tail:  n.Tail(),
		}
		if n.IsList() {
			data.Text = n.String()
		}

		var sb strings.Builder
		if err := bound.Execute(&sb, data); err != nil {
			// a failed nested compile is reported as is
			if compileErr != nil {
				return "", compileErr
			}

			return "", fmt.Errorf("rule '%s': %w", name, err)
		}

		return sb.String(), nil
	}, nil
}

// templateFuncs binds compile and compileAll to rules. The first nested
// compile failure is stored in failed.
func templateFuncs(rules *RuleTable, failed *error) template.FuncMap {
	record := func(err error) error {
		if err != nil && failed != nil && *failed == nil {
			*failed = err
		}

		return err
	}

	return template.FuncMap{
		"compile": func(n *sexp.Node) (string, error) {
			out, err := Compile(n, rules)
			return out, record(err)
		},
		"compileAll": func(nodes []*sexp.Node) ([]string, error) {
			out, err := compileEach(nodes, rules)
			return out, record(err)
		},
		"join": strings.Join,
	}
}
