package sexpjs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/sexpjs/compiler"
	"github.com/shibukawa/sexpjs/testhelper"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "sexpjs.yaml"))
	assert.NoError(t, err)

	assert.True(t, config.QuoteShorthandEnabled())
	assert.Equal(t, "preserve", config.IdentifierCase)
	assert.Equal(t, FormatJS, config.Output.Format)
	assert.Equal(t, []string{"scheme", "church", "lisp"}, config.Markdown.Languages)
	assert.Equal(t, 0, len(config.Rules))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := testhelper.WriteFile(t, dir, "sexpjs.yaml", testhelper.TrimIndent(t, `
		quote_shorthand: false
		identifier_case: camel
		output:
		  format: json
		  pretty: true
		markdown:
		  languages: [scheme]
		rules:
		  - name: display
		    trigger: head == "display"
		    template: 'console.log({{join (compileAll .Tail) ", "}});'
		`))

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.False(t, config.QuoteShorthandEnabled())
	options, err := config.CompilerOptions()
	assert.NoError(t, err)
	assert.Equal(t, compiler.Options{IdentifierCase: compiler.CamelCase}, options)
	assert.Equal(t, OutputConfig{Format: FormatJSON, Pretty: true}, config.Output)
	assert.Equal(t, []string{"scheme"}, config.Markdown.Languages)
	assert.Equal(t, []compiler.RuleDefinition{
		{
			Name:     "display",
			Trigger:  `head == "display"`,
			Template: `console.log({{join (compileAll .Tail) ", "}});`,
		},
	}, config.Rules)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := testhelper.WriteFile(t, t.TempDir(), "sexpjs.yaml", "output:\n  pretty: true\n")

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.True(t, config.QuoteShorthandEnabled())
	assert.Equal(t, FormatJS, config.Output.Format)
	assert.True(t, config.Output.Pretty)
	assert.Equal(t, []string{"scheme", "church", "lisp"}, config.Markdown.Languages)
}

func TestLoadConfigStrict(t *testing.T) {
	path := testhelper.WriteFile(t, t.TempDir(), "sexpjs.yaml", "unknown_key: 1\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "identifier case",
			content: "identifier_case: snake\n",
			message: "identifier_case",
		},
		{
			name:    "output format",
			content: "output:\n  format: toml\n",
			message: "invalid output.format 'toml'",
		},
		{
			name:    "empty language",
			content: "markdown:\n  languages: [scheme, \"\"]\n",
			message: "markdown.languages[1] is empty",
		},
		{
			name:    "rule without name",
			content: "rules:\n  - trigger: 'true'\n    template: x\n",
			message: "rules[0]: name is required",
		},
		{
			name:    "duplicate rule",
			content: "rules:\n  - {name: a, trigger: 'true', template: x}\n  - {name: a, trigger: 'true', template: y}\n",
			message: "duplicate rule name 'a'",
		},
		{
			name:    "rule without trigger",
			content: "rules:\n  - {name: a, template: x}\n",
			message: "rule 'a': trigger is required",
		},
		{
			name:    "rule with two replacers",
			content: "rules:\n  - {name: a, trigger: 'true', template: x, lua: y}\n",
			message: "exactly one of template or lua",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testhelper.WriteFile(t, t.TempDir(), "sexpjs.yaml", tt.content)

			_, err := LoadConfig(path)
			assert.IsError(t, err, ErrConfigValidation)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	testhelper.WriteFile(t, dir, ".env", "SEXPJS_TEST_OUTPUT_FORMAT=yaml\n")
	path := testhelper.WriteFile(t, dir, "sexpjs.yaml", testhelper.TrimIndent(t, `
		identifier_case: ${SEXPJS_TEST_IDENTIFIER_CASE}
		output:
		  format: ${SEXPJS_TEST_OUTPUT_FORMAT}
		`))

	t.Setenv("SEXPJS_TEST_IDENTIFIER_CASE", "camel")
	t.Cleanup(func() { os.Unsetenv("SEXPJS_TEST_OUTPUT_FORMAT") })

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "camel", config.IdentifierCase)
	assert.Equal(t, FormatYAML, config.Output.Format)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SEXPJS_TEST_VALUE", "lisp")

	assert.Equal(t, "lisp", expandEnvVars("${SEXPJS_TEST_VALUE}"))
	assert.Equal(t, "x-lisp-y", expandEnvVars("x-$SEXPJS_TEST_VALUE-y"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	data, err := DefaultConfig().Marshal()
	assert.NoError(t, err)

	path := testhelper.WriteFile(t, t.TempDir(), "sexpjs.yaml", string(data))

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestCompilerOptionsRejectsUnknownCase(t *testing.T) {
	config := DefaultConfig()
	config.IdentifierCase = "snake"

	_, err := config.CompilerOptions()
	assert.IsError(t, err, ErrConfigValidation)
	assert.IsError(t, err, compiler.ErrUnknownIdentifierCase)
}
