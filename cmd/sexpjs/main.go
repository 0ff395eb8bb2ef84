package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/shibukawa/sexpjs"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config           string
	Verbose          bool
	Quiet            bool
	NoQuoteShorthand bool

	Stdout io.Writer
	Stderr io.Writer
}

// loadConfig reads the configuration file and applies global flags
func (c *Context) loadConfig() (*sexpjs.Config, error) {
	config, err := sexpjs.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.NoQuoteShorthand {
		disabled := false
		config.QuoteShorthand = &disabled
	}

	c.info("Loaded configuration: %s (quote shorthand: %t, identifier case: %s)",
		c.Config, config.QuoteShorthandEnabled(), config.IdentifierCase)

	return config, nil
}

// loadPipeline loads the configuration and builds the rule table
func (c *Context) loadPipeline() (*sexpjs.Pipeline, *sexpjs.Config, error) {
	config, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := sexpjs.NewPipeline(config)
	if err != nil {
		return nil, nil, err
	}

	c.info("Rules: %v", pipeline.Rules().Names())

	return pipeline, config, nil
}

// info prints progress in verbose mode
func (c *Context) info(format string, args ...any) {
	if c.Verbose && !c.Quiet {
		color.New(color.FgBlue).Fprintf(c.Stderr, format+"\n", args...)
	}
}

// success prints a completion message unless quiet
func (c *Context) success(format string, args ...any) {
	if !c.Quiet {
		color.New(color.FgGreen).Fprintf(c.Stderr, format+"\n", args...)
	}
}

// warn prints a warning unless quiet
func (c *Context) warn(format string, args ...any) {
	if !c.Quiet {
		color.New(color.FgYellow).Fprintf(c.Stderr, format+"\n", args...)
	}
}

var CLI struct {
	Config           string     `help:"Configuration file path" default:"sexpjs.yaml"`
	Verbose          bool       `help:"Enable verbose output" short:"v"`
	Quiet            bool       `help:"Suppress output" short:"q"`
	NoQuoteShorthand bool       `help:"Read ' as an ordinary symbol instead of (quote ...)"`
	Convert          ConvertCmd `cmd:"" default:"withargs" help:"Convert Lisp source to JavaScript"`
	Tree             TreeCmd    `cmd:"" help:"Dump the parsed forest as JSON, YAML or XML"`
	Tokens           TokensCmd  `cmd:"" help:"List tokens with their positions"`
	Init             InitCmd    `cmd:"" help:"Create a sexpjs.yaml with default settings"`
	Version          VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "sexpjs %s\n", version)
	return nil
}

func newContext() *Context {
	return &Context{
		Config:           CLI.Config,
		Verbose:          CLI.Verbose,
		Quiet:            CLI.Quiet,
		NoQuoteShorthand: CLI.NoQuoteShorthand,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sexpjs"),
		kong.Description("Convert Lisp S-expressions to JavaScript"),
	)

	err := ctx.Run(newContext())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
