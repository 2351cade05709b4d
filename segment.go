package segmentify

import (
	"github.com/riverfjs/segmentify-go/internal/util"
)

// SegmentKind identifies a segment variant.
type SegmentKind int

const (
	// SegmentMarkdown is prose, headings, and lists, with inline math
	// placeholders still embedded.
	SegmentMarkdown SegmentKind = iota
	// SegmentMath is a display-mode math block, delimiter-free.
	SegmentMath
	// SegmentCode is verbatim fenced content.
	SegmentCode
	// SegmentRule is a horizontal divider.
	SegmentRule
	// SegmentTable is a contiguous header+divider+rows block.
	SegmentTable
)

// String returns the string representation of SegmentKind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentMarkdown:
		return "markdown"
	case SegmentMath:
		return "math"
	case SegmentCode:
		return "code"
	case SegmentRule:
		return "rule"
	case SegmentTable:
		return "table"
	default:
		return "unknown"
	}
}

// Segment is one typed unit of segmented output.
type Segment interface {
	Kind() SegmentKind
	// Reconstruct returns the segment's source form: markdown text verbatim,
	// math re-wrapped in its original delimiters, code re-fenced, the raw
	// table block, a divider line.
	Reconstruct() string
}

// Markdown is a prose segment. Text may contain inline math placeholders;
// the renderer substitutes them using the message's MathTokens.
type Markdown struct {
	Text string
}

// Kind returns SegmentMarkdown.
func (m *Markdown) Kind() SegmentKind { return SegmentMarkdown }

// Reconstruct returns the markdown text unchanged.
func (m *Markdown) Reconstruct() string { return m.Text }

// Math is a display math block.
type Math struct {
	Latex   string
	Display bool
	// Raw is the original span including delimiters.
	Raw string
}

// Kind returns SegmentMath.
func (m *Math) Kind() SegmentKind { return SegmentMath }

// Reconstruct returns the original delimited span.
func (m *Math) Reconstruct() string {
	if m.Raw != "" {
		return m.Raw
	}
	if m.Display {
		return "$$" + m.Latex + "$$"
	}
	return "$" + m.Latex + "$"
}

// Code is a fenced code block.
type Code struct {
	Code     string
	Language string
	// Raw is the original span including fence markers.
	Raw string
}

// Kind returns SegmentCode.
func (c *Code) Kind() SegmentKind { return SegmentCode }

// Reconstruct returns the original fenced span.
func (c *Code) Reconstruct() string {
	if c.Raw != "" {
		return c.Raw
	}
	return "```" + c.Language + "\n" + c.Code + "\n```"
}

// SuggestFilename picks a filename for saving the code block: one mentioned
// in the code's first lines if present, otherwise derived from the language.
func (c *Code) SuggestFilename() string {
	return util.SuggestFilename(c.Code, c.Language)
}

// Rule is a horizontal divider. It carries no payload.
type Rule struct{}

// Kind returns SegmentRule.
func (r *Rule) Kind() SegmentKind { return SegmentRule }

// Reconstruct returns a canonical divider line.
func (r *Rule) Reconstruct() string { return "---" }

// Table is a pipe table rendered verbatim. Use ParseTable to get cells.
type Table struct {
	Raw string
}

// Kind returns SegmentTable.
func (t *Table) Kind() SegmentKind { return SegmentTable }

// Reconstruct returns the raw table block.
func (t *Table) Reconstruct() string { return t.Raw }
