package tokenizer

import (
	"sort"
	"strconv"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// PositionIndex maps byte offsets of one source text to positions.
// It is only consulted when formatting diagnostics.
type PositionIndex struct {
	source     string
	lineStarts []int
}

// NewPositionIndex scans source once and records where each line starts.
func NewPositionIndex(source string) *PositionIndex {
	lineStarts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &PositionIndex{
		source:     source,
		lineStarts: lineStarts,
	}
}

// Locate returns the position of offset. Offsets outside the source are
// clamped to its bounds.
func (p *PositionIndex) Locate(offset int) Position {
	if offset < 0 {
		offset = 0
	}

	if offset > len(p.source) {
		offset = len(p.source)
	}

	// last line whose start is <= offset
	line := sort.Search(len(p.lineStarts), func(i int) bool {
		return p.lineStarts[i] > offset
	}) - 1

	column := utf8.RuneCountInString(p.source[p.lineStarts[line]:offset]) + 1

	return Position{Line: line + 1, Column: column}
}

// Lines returns the number of lines in the source.
func (p *PositionIndex) Lines() int {
	return len(p.lineStarts)
}
