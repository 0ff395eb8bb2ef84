package compiler

import (
	"fmt"
)

// RuleDefinition is a user-defined rule as written in the configuration file.
// Trigger is a CEL expression; exactly one of Template and Lua supplies the
// replacer.
type RuleDefinition struct {
	Name     string `yaml:"name"`
	Trigger  string `yaml:"trigger"`
	Template string `yaml:"template,omitempty"`
	Lua      string `yaml:"lua,omitempty"`
	Override bool   `yaml:"override,omitempty"`
}

// Build compiles the definition into a Rule
func (d RuleDefinition) Build() (Rule, error) {
	if d.Name == "" {
		return Rule{}, fmt.Errorf("%w: name is required", ErrInvalidRule)
	}

	if d.Trigger == "" {
		return Rule{}, fmt.Errorf("%w: rule '%s': trigger is required", ErrInvalidRule, d.Name)
	}

	if (d.Template == "") == (d.Lua == "") {
		return Rule{}, fmt.Errorf("%w: rule '%s': exactly one of template or lua is required", ErrInvalidRule, d.Name)
	}

	trigger, err := compileTrigger(d.Trigger)
	if err != nil {
		return Rule{}, fmt.Errorf("rule '%s': %w", d.Name, err)
	}

	var replacer Replacer
	if d.Template != "" {
		replacer, err = compileTemplate(d.Name, d.Template)
	} else {
		replacer, err = compileLua(d.Name, d.Lua)
	}

	if err != nil {
		return Rule{}, fmt.Errorf("rule '%s': %w", d.Name, err)
	}

	return Rule{Name: d.Name, Trigger: trigger, Replace: replacer}, nil
}

// NewTable builds the baseline rules plus user-defined rules. Overriding
// definitions go before the baseline, the rest after it, each group in
// definition order.
func NewTable(opts Options, definitions []RuleDefinition) (*RuleTable, error) {
	var before, after []Rule

	for _, definition := range definitions {
		rule, err := definition.Build()
		if err != nil {
			return nil, err
		}

		if definition.Override {
			before = append(before, rule)
		} else {
			after = append(after, rule)
		}
	}

	rules := make([]Rule, 0, len(before)+len(after)+5)
	rules = append(rules, before...)
	rules = append(rules, BaselineRules(opts)...)
	rules = append(rules, after...)

	return NewRuleTable(rules...), nil
}
