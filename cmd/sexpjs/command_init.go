package main

import (
	"fmt"
	"os"

	"github.com/shibukawa/sexpjs"
)

const configHeader = `# sexpjs configuration
#
# quote_shorthand: read 'x as (quote x)
# identifier_case: preserve | camel (make-coin -> makeCoin)
# output.format:   js | json | yaml | xml
# rules:           user rules, tried after the built-in ones unless override is set
#   - name: display
#     trigger: kind == "list" && head == "display"
#     template: 'console.log({{join (compileAll .Tail) ", "}});'

`

// InitCmd represents the init command
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(ctx *Context) error {
	ctx.info("Initializing %s", ctx.Config)

	if !i.Force {
		if _, err := os.Stat(ctx.Config); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, ctx.Config)
		}
	}

	data, err := sexpjs.DefaultConfig().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	err = os.WriteFile(ctx.Config, append([]byte(configHeader), data...), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	ctx.success("Created %s", ctx.Config)

	return nil
}
