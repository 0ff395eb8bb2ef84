package main

import (
	"fmt"

	"github.com/shibukawa/sexpjs"
)

// TokensCmd represents the tokens command
type TokensCmd struct {
	Input string `arg:"" optional:"" help:"Lisp source or literate markdown (.md) file"`
}

// Run prints one token per line as line:column, type and text
func (cmd *TokensCmd) Run(ctx *Context) error {
	if cmd.Input == "" {
		return sexpjs.ErrMissingArgument
	}

	pipeline, _, err := ctx.loadPipeline()
	if err != nil {
		return err
	}

	tokens, err := pipeline.TokensFile(cmd.Input)
	if err != nil {
		return err
	}

	for _, token := range tokens {
		fmt.Fprintf(ctx.Stdout, "%s\t%s\t%s\n", token.Pos, token.Type, token.Value)
	}

	return nil
}
