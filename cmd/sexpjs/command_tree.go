package main

import (
	"io"
	"os"

	"github.com/shibukawa/sexpjs"
	"github.com/shibukawa/sexpjs/intermediate"
)

// TreeCmd represents the tree command
type TreeCmd struct {
	Input    string `arg:"" optional:"" help:"Lisp source or literate markdown (.md) file"`
	Output   string `short:"o" help:"Output file (default: stdout)"`
	Format   string `short:"f" help:"Tree format: json, yaml or xml (default: output.format, or json)"`
	Envelope bool   `help:"Wrap the forest with its source file and content (json only)"`
	Pretty   bool   `short:"p" help:"Indent the output"`
}

// Run executes the tree command
func (cmd *TreeCmd) Run(ctx *Context) error {
	if cmd.Input == "" {
		return sexpjs.ErrMissingArgument
	}

	pipeline, config, err := ctx.loadPipeline()
	if err != nil {
		return err
	}

	format := cmd.Format
	if format == "" {
		format = config.Output.Format
		if format == sexpjs.FormatJS {
			format = sexpjs.FormatJSON
		}
	}

	if cmd.Envelope && format != sexpjs.FormatJSON {
		return ErrEnvelopeRequiresJSON
	}

	pretty := cmd.Pretty || config.Output.Pretty

	forest, err := pipeline.ParseFile(cmd.Input)
	if err != nil {
		return err
	}

	ctx.info("Read %d top-level expressions from %s", len(forest), cmd.Input)

	return writeOutput(ctx, cmd.Output, func(w io.Writer) error {
		if !cmd.Envelope {
			return intermediate.Write(w, format, forest, pretty)
		}

		content, err := os.ReadFile(cmd.Input)
		if err != nil {
			return err
		}

		envelope := intermediate.NewFormat()
		envelope.SetSource(cmd.Input, string(content))
		envelope.SetForest(forest)

		return envelope.WriteJSON(w, pretty)
	})
}
