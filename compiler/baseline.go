package compiler

import (
	"strconv"
	"strings"

	"github.com/shibukawa/sexpjs/sexp"
	"github.com/shopspring/decimal"
)

// Options tune the baseline rules
type Options struct {
	IdentifierCase IdentifierCase
}

// BaselineRules returns the built-in rules in priority order:
// int, number, string, list-shorthand, var-binding.
func BaselineRules(opts Options) []Rule {
	return []Rule{
		{
			Name:    "int",
			Trigger: isInteger,
			Replace: replaceInteger,
		},
		{
			Name:    "number",
			Trigger: isDecimal,
			Replace: replaceDecimal,
		},
		{
			Name: "string",
			Trigger: func(n *sexp.Node) bool {
				return n.IsQuoted()
			},
			Replace: func(n *sexp.Node, _ *RuleTable) (string, error) {
				return n.Text, nil
			},
		},
		{
			Name:    "list-shorthand",
			Trigger: isQuotedList,
			Replace: replaceQuotedList,
		},
		{
			Name:    "var-binding",
			Trigger: isVarBinding,
			Replace: varBindingReplacer(opts.IdentifierCase),
		},
	}
}

// NewBaselineTable creates a table with only the baseline rules
func NewBaselineTable(opts Options) *RuleTable {
	return NewRuleTable(BaselineRules(opts)...)
}

func isInteger(n *sexp.Node) bool {
	if !n.IsAtom() {
		return false
	}

	_, err := strconv.ParseInt(n.Text, 10, 64)

	return err == nil
}

func replaceInteger(n *sexp.Node, _ *RuleTable) (string, error) {
	v, err := strconv.ParseInt(n.Text, 10, 64)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(v, 10), nil
}

func isDecimal(n *sexp.Node) bool {
	if !n.IsAtom() || n.IsQuoted() {
		return false
	}

	_, err := decimal.NewFromString(n.Text)

	return err == nil
}

// maxDecimalExponent bounds the exponents written out in full; beyond it the
// source text is kept, which is already a valid JavaScript numeric literal.
const maxDecimalExponent = 64

func replaceDecimal(n *sexp.Node, _ *RuleTable) (string, error) {
	d, err := decimal.NewFromString(n.Text)
	if err != nil {
		return "", err
	}

	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return n.Text, nil
	}

	return d.String(), nil
}

// (quote a b c) -> [a, b, c]
func isQuotedList(n *sexp.Node) bool {
	return n.Len() > 0 && n.List[0].IsAtomText("quote")
}

func replaceQuotedList(n *sexp.Node, rules *RuleTable) (string, error) {
	items, err := compileEach(n.Tail(), rules)
	if err != nil {
		return "", err
	}

	return "[" + strings.Join(items, ", ") + "]", nil
}

// (define a b) -> var a = b;
func isVarBinding(n *sexp.Node) bool {
	return n.Len() == 3 && n.List[0].IsAtomText("define") && n.List[1].IsAtom()
}

func varBindingReplacer(identifierCase IdentifierCase) Replacer {
	return func(n *sexp.Node, rules *RuleTable) (string, error) {
		value, err := Compile(n.List[2], rules)
		if err != nil {
			return "", err
		}

		return "var " + identifierCase.Convert(n.List[1].Text) + " = " + value + ";", nil
	}
}

func compileEach(nodes []*sexp.Node, rules *RuleTable) ([]string, error) {
	results := make([]string, 0, len(nodes))

	for _, n := range nodes {
		s, err := Compile(n, rules)
		if err != nil {
			return nil, err
		}

		results = append(results, s)
	}

	return results, nil
}
