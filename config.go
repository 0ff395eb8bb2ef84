package sexpjs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/sexpjs/compiler"
	"github.com/shibukawa/sexpjs/markdownparser"
)

// Output formats accepted by output.format
const (
	FormatJS   = "js"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

var outputFormats = []string{FormatJS, FormatJSON, FormatYAML, FormatXML}

// Config represents the sexpjs.yaml configuration
type Config struct {
	// QuoteShorthand enables reading 'x as (quote x). Unset means enabled.
	QuoteShorthand *bool                     `yaml:"quote_shorthand,omitempty"`
	IdentifierCase string                    `yaml:"identifier_case,omitempty"`
	Output         OutputConfig              `yaml:"output"`
	Markdown       MarkdownConfig            `yaml:"markdown"`
	Rules          []compiler.RuleDefinition `yaml:"rules,omitempty"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	Format string `yaml:"format"`
	Pretty bool   `yaml:"pretty"`
}

// MarkdownConfig represents literate markdown input settings
type MarkdownConfig struct {
	Languages []string `yaml:"languages"`
}

// QuoteShorthandEnabled reports the effective quote_shorthand setting
func (c *Config) QuoteShorthandEnabled() bool {
	return c.QuoteShorthand == nil || *c.QuoteShorthand
}

// CompilerOptions returns the options for the baseline rules
func (c *Config) CompilerOptions() (compiler.Options, error) {
	identifierCase, err := compiler.ParseIdentifierCase(c.IdentifierCase)
	if err != nil {
		return compiler.Options{}, fmt.Errorf("%w: identifier_case: %w", ErrConfigValidation, err)
	}

	return compiler.Options{IdentifierCase: identifierCase}, nil
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		QuoteShorthand: boolPtr(true),
		IdentifierCase: string(compiler.PreserveCase),
		Output: OutputConfig{
			Format: FormatJS,
		},
		Markdown: MarkdownConfig{
			Languages: slices.Clone(markdownparser.DefaultLanguages),
		},
	}
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
}

func validateConfig(config *Config) error {
	if config.IdentifierCase != "" {
		if _, err := compiler.ParseIdentifierCase(config.IdentifierCase); err != nil {
			return fmt.Errorf("%w: identifier_case: %w", ErrConfigValidation, err)
		}
	}

	if config.Output.Format != "" && !slices.Contains(outputFormats, config.Output.Format) {
		return fmt.Errorf("%w: invalid output.format '%s': must be one of js, json, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	for i, language := range config.Markdown.Languages {
		if language == "" {
			return fmt.Errorf("%w: markdown.languages[%d] is empty", ErrConfigValidation, i)
		}
	}

	seen := make(map[string]bool, len(config.Rules))

	for i, rule := range config.Rules {
		if rule.Name == "" {
			return fmt.Errorf("%w: rules[%d]: name is required", ErrConfigValidation, i)
		}

		if seen[rule.Name] {
			return fmt.Errorf("%w: rules[%d]: duplicate rule name '%s'", ErrConfigValidation, i, rule.Name)
		}

		seen[rule.Name] = true

		if rule.Trigger == "" {
			return fmt.Errorf("%w: rule '%s': trigger is required", ErrConfigValidation, rule.Name)
		}

		if (rule.Template == "") == (rule.Lua == "") {
			return fmt.Errorf("%w: rule '%s': exactly one of template or lua is required", ErrConfigValidation, rule.Name)
		}
	}

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.QuoteShorthand == nil {
		config.QuoteShorthand = defaults.QuoteShorthand
	}

	if config.IdentifierCase == "" {
		config.IdentifierCase = defaults.IdentifierCase
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}

	if len(config.Markdown.Languages) == 0 {
		config.Markdown.Languages = defaults.Markdown.Languages
	}
}

// loadEnvFiles loads .env from the current directory and from dir
func loadEnvFiles(dir string) error {
	candidates := []string{".env"}
	if dir != "" && dir != "." {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if !fileExists(path) {
			continue
		}

		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in settings. Rule
// triggers and replacers are code and stay untouched.
func expandConfigEnvVars(config *Config) {
	config.IdentifierCase = expandEnvVars(config.IdentifierCase)
	config.Output.Format = expandEnvVars(config.Output.Format)

	for i, language := range config.Markdown.Languages {
		config.Markdown.Languages[i] = expandEnvVars(language)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
