package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shibukawa/sexpjs"
	"github.com/shibukawa/sexpjs/intermediate"
)

// ConvertCmd represents the convert command
type ConvertCmd struct {
	Input  string `arg:"" optional:"" help:"Lisp source or literate markdown (.md) file"`
	Output string `short:"o" help:"Output file (default: stdout)"`
}

// Run executes the convert command
func (cmd *ConvertCmd) Run(ctx *Context) error {
	if cmd.Input == "" {
		return sexpjs.ErrMissingArgument
	}

	pipeline, config, err := ctx.loadPipeline()
	if err != nil {
		return err
	}

	ctx.info("Converting %s", cmd.Input)

	return writeOutput(ctx, cmd.Output, func(w io.Writer) error {
		if config.Output.Format != sexpjs.FormatJS {
			forest, err := pipeline.ParseFile(cmd.Input)
			if err != nil {
				return err
			}

			return intermediate.Write(w, config.Output.Format, forest, config.Output.Pretty)
		}

		lines, err := pipeline.ConvertFile(cmd.Input)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			ctx.warn("No expressions found in %s", cmd.Input)
			return nil
		}

		_, err = io.WriteString(w, strings.Join(lines, "\n")+"\n")

		return err
	})
}

// writeOutput runs write against stdout or, when path is set, a file that
// is only created once generation succeeded
func writeOutput(ctx *Context, path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(ctx.Stdout)
	}

	var sb strings.Builder
	if err := write(&sb); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	ctx.success("Wrote %s", path)

	return nil
}
