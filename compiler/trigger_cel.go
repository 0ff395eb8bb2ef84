package compiler

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/sexpjs/sexp"
)

// compileTrigger compiles a CEL expression over the variables
// kind, text, head, size and items.
func compileTrigger(expression string) (Trigger, error) {
	env, err := cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("text", cel.StringType),
		cel.Variable("head", cel.StringType),
		cel.Variable("size", cel.IntType),
		cel.Variable("items", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger CEL: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: CEL compilation error: %w", ErrInvalidRule, issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: trigger must evaluate to bool, got %s", ErrInvalidRule, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return func(n *sexp.Node) bool {
		result, _, err := program.Eval(triggerVariables(n))
		if err != nil {
			// runtime errors such as items[5] on a short list are a non-match
			return false
		}

		matched, ok := result.Value().(bool)

		return ok && matched
	}, nil
}

func triggerVariables(n *sexp.Node) map[string]any {
	text := n.Text
	if n.IsList() {
		text = n.String()
	}

	items := make([]string, 0, n.Len())
	if n.IsList() {
		for _, child := range n.List {
			items = append(items, child.String())
		}
	}

	return map[string]any{
		"kind":  n.Kind.String(),
		"text":  text,
		"head":  n.Head(),
		"size":  n.Len(),
		"items": items,
	}
}
