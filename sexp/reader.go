package sexp

import (
	"errors"

	"github.com/shibukawa/sexpjs/tokenizer"
)

// Sentinel errors
var (
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")
	ErrDanglingQuote   = errors.New("quote with nothing to quote")
)

// ReadOptions are options for Read
type ReadOptions struct {
	QuoteShorthand bool
}

// pendingQuote tracks a ' waiting for the node it applies to
type pendingQuote struct {
	set    bool
	offset int
}

// Read builds the forest of top-level nodes from tokens.
// With QuoteShorthand, 'x becomes the atom "x" and '(a b) becomes
// (quote a b). A quoted string literal such as '"s" is already quoted and
// stays "s" instead of being wrapped a second time.
// Failures are *tokenizer.SyntaxError wrapping ErrUnbalancedParen or
// ErrDanglingQuote.
func Read(tokens []tokenizer.Token, opts ReadOptions) ([]*Node, error) {
	var (
		stack  []*Node
		result = make([]*Node, 0)
		quote  pendingQuote
	)

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			result = append(result, n)
			return
		}

		top := stack[len(stack)-1]
		top.List = append(top.List, n)
	}

	for _, token := range tokens {
		switch {
		case token.Is('('):
			list := &Node{Kind: KindList, List: make([]*Node, 0), Offset: token.Offset}
			if quote.set {
				list.List = append(list.List, &Node{Kind: KindAtom, Text: "quote", Offset: quote.offset})
				quote = pendingQuote{}
			}

			stack = append(stack, list)

		case token.Is(')'):
			if quote.set {
				return nil, &tokenizer.SyntaxError{Err: ErrDanglingQuote, Offset: quote.offset}
			}

			if len(stack) == 0 {
				return nil, &tokenizer.SyntaxError{Err: ErrUnbalancedParen, Offset: token.Offset}
			}

			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			appendNode(closed)

		case opts.QuoteShorthand && token.Is('\''):
			if !quote.set {
				quote = pendingQuote{set: true, offset: token.Offset}
			}

		default:
			text := token.Value
			if quote.set {
				if token.Type != tokenizer.STRING {
					text = `"` + text + `"`
				}

				quote = pendingQuote{}
			}

			appendNode(&Node{Kind: KindAtom, Text: text, Offset: token.Offset})
		}
	}

	if quote.set {
		return nil, &tokenizer.SyntaxError{Err: ErrDanglingQuote, Offset: quote.offset}
	}

	if len(stack) > 0 {
		return nil, &tokenizer.SyntaxError{Err: ErrUnbalancedParen, Offset: stack[len(stack)-1].Offset}
	}

	return result, nil
}

// ReadString tokenizes and reads source in one step
func ReadString(source string, opts ReadOptions) ([]*Node, error) {
	tokens, err := tokenizer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	return Read(tokens, opts)
}
