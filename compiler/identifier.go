package compiler

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IdentifierCase controls how binding names are written
type IdentifierCase string

const (
	// PreserveCase keeps names as written
	PreserveCase IdentifierCase = "preserve"
	// CamelCase turns make-coin into makeCoin
	CamelCase IdentifierCase = "camel"
)

// ParseIdentifierCase validates a configuration value. Empty means preserve.
func ParseIdentifierCase(s string) (IdentifierCase, error) {
	switch IdentifierCase(s) {
	case "", PreserveCase:
		return PreserveCase, nil
	case CamelCase:
		return CamelCase, nil
	default:
		return "", fmt.Errorf("%w: '%s': must be one of preserve, camel", ErrUnknownIdentifierCase, s)
	}
}

// Convert applies the case to a name. Names with an empty segment
// (-x, x-, a--b) are kept as written so distinct names stay distinct.
func (c IdentifierCase) Convert(name string) string {
	if c != CamelCase || !strings.Contains(name, "-") {
		return name
	}

	parts := strings.Split(name, "-")
	if slices.Contains(parts, "") {
		return name
	}

	// casers keep state and are not shared between goroutines
	caser := cases.Title(language.English, cases.NoLower)

	var sb strings.Builder
	sb.WriteString(parts[0])

	for _, part := range parts[1:] {
		sb.WriteString(caser.String(part))
	}

	return sb.String()
}
