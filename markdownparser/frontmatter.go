package markdownparser

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// parseFrontMatter splits YAML front matter from the markdown body. The
// returned line count is the number of newlines consumed, so body line n is
// document line n + consumed.
func parseFrontMatter(content string) (map[string]any, string, int, error) {
	if !strings.HasPrefix(content, "---\n") {
		return make(map[string]any), content, 0, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return nil, "", 0, ErrInvalidFrontMatter
	}

	endIndex += 4

	frontMatterContent := content[4:endIndex]
	remaining := content[endIndex+4:]
	consumed := strings.Count(content[:endIndex+4], "\n")

	var frontMatter map[string]any

	if err := yaml.Unmarshal([]byte(frontMatterContent), &frontMatter); err != nil {
		return nil, "", 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = make(map[string]any)
	}

	return frontMatter, remaining, consumed, nil
}
