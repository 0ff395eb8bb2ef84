package compiler

import (
	"github.com/shibukawa/sexpjs/sexp"
)

// Trigger decides whether a rule applies to a node
type Trigger func(n *sexp.Node) bool

// Replacer produces output text for a node. It may call Compile on
// sub-nodes with the table it was given.
type Replacer func(n *sexp.Node, rules *RuleTable) (string, error)

// Rule is a named (trigger, replacer) pair
type Rule struct {
	Name    string
	Trigger Trigger
	Replace Replacer
}

// RuleTable is an ordered, immutable list of rules. Earlier rules win.
// A table is safe for concurrent use by multiple goroutines.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable creates a table holding a copy of rules in the given order
func NewRuleTable(rules ...Rule) *RuleTable {
	return &RuleTable{rules: append([]Rule(nil), rules...)}
}

// Len returns the number of rules
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Names returns rule names in priority order
func (t *RuleTable) Names() []string {
	names := make([]string, 0, len(t.rules))
	for _, rule := range t.rules {
		names = append(names, rule.Name)
	}

	return names
}

// Match returns the first rule whose trigger accepts n
func (t *RuleTable) Match(n *sexp.Node) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Trigger(n) {
			return rule, true
		}
	}

	return Rule{}, false
}

// Compile is shorthand for Compile(n, t)
func (t *RuleTable) Compile(n *sexp.Node) (string, error) {
	return Compile(n, t)
}

// Compile runs the replacer of the first matching rule. When nothing
// matches it returns *UnmatchedExpressionError.
func Compile(n *sexp.Node, rules *RuleTable) (string, error) {
	rule, ok := rules.Match(n)
	if !ok {
		return "", &UnmatchedExpressionError{Node: n}
	}

	return rule.Replace(n, rules)
}

// CompileAll compiles each top-level node, one output line per node.
// It stops at the first error.
func CompileAll(forest []*sexp.Node, rules *RuleTable) ([]string, error) {
	lines := make([]string, 0, len(forest))

	for _, n := range forest {
		line, err := Compile(n, rules)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}
