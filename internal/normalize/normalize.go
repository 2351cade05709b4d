// Package normalize repairs the structural surface of raw model output
// before segmentation.
//
// Models routinely emit markdown with missing marker spacing, jammed inline
// list items, literal \n escapes, and HTML break tags. Left alone, those
// collapse whole answers into one paragraph once rendered. The rewrites here
// run in a fixed order; each is stable on well-formed input, but the sequence
// as a whole is order-dependent. Fenced code regions are never rewritten.
package normalize

import (
	"regexp"
	"strings"

	"github.com/riverfjs/segmentify-go/internal/delim"
)

var (
	// Fenced regions are carried through every pass untouched. An
	// unterminated fence is not matched and falls through as ordinary text.
	fenceRegionRe = regexp.MustCompile("(?s)```.*?```")

	brTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

	dashNoSpaceRe = regexp.MustCompile(`(?m)^([ \t]*)-([^\s-])`)
	numNoSpaceRe  = regexp.MustCompile(`(?m)^([ \t]*)(\d+)\.(\S)`)

	jamDashRe = regexp.MustCompile("(\\S) - (\\*\\*|`|\\[|[A-Z])")
	jamNumRe  = regexp.MustCompile("(\\S) (\\d{1,2})\\. (\\*\\*|`|\\[|[A-Z])")
	boldItemRe = regexp.MustCompile(`\*\* - `)

	ruleLineRe     = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
	tableDividerRe = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?$`)
)

// Normalize rewrites the surface of text so the segmenter sees well-formed
// structure. The pass order follows the repair pipeline: line endings, escape
// expansion, heading and list marker repair, jammed marker splitting, leading
// blank trim, list block spacing, hard line breaks.
func Normalize(text string) string {
	text = unifyLineEndings(text)
	text = mapOutsideFences(text, repairChunk)
	text = trimLeadingBlank(text)
	text = mapOutsideFences(text, spaceChunk)
	return text
}

// mapOutsideFences applies f to every region of text that is not inside a
// complete code fence. Fence regions, markers included, pass through verbatim.
func mapOutsideFences(text string, f func(string) string) string {
	if !strings.Contains(text, "```") {
		return f(text)
	}
	matches := fenceRegionRe.FindAllStringIndex(text, -1)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(f(text[last:m[0]]))
		b.WriteString(text[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(f(text[last:]))
	return b.String()
}

func unifyLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// repairChunk runs the content rewrites on one non-fence region.
func repairChunk(chunk string) string {
	chunk = expandEscapes(chunk)
	chunk = repairHeadings(chunk)
	chunk = dashNoSpaceRe.ReplaceAllString(chunk, "$1- $2")
	chunk = numNoSpaceRe.ReplaceAllString(chunk, "$1$2. $3")
	chunk = repairLabelList(chunk)
	chunk = splitJammedMarkers(chunk)
	return chunk
}

// spaceChunk runs the block spacing rewrites on one non-fence region.
func spaceChunk(chunk string) string {
	chunk = spaceListBlocks(chunk)
	chunk = hardenLineBreaks(chunk)
	return chunk
}

// expandEscapes turns the literal two-character sequence \n and HTML break
// tags into real newlines. An escaped backslash (\\n) stays literal.
func expandEscapes(chunk string) string {
	if strings.Contains(chunk, `\n`) {
		var b strings.Builder
		b.Grow(len(chunk))
		i := 0
		for i < len(chunk) {
			if chunk[i] == '\\' && i+1 < len(chunk) && chunk[i+1] == 'n' && !delim.IsEscaped(chunk, i) {
				b.WriteByte('\n')
				i += 2
				continue
			}
			b.WriteByte(chunk[i])
			i++
		}
		chunk = b.String()
	}
	return brTagRe.ReplaceAllString(chunk, "\n")
}

// repairHeadings pushes a malformed heading marker onto its own line and
// inserts the missing space after it. A well-formed heading at line start is
// left alone. Single # markers are only repaired at line start, so inline
// text like "issue #5" or "C#" survives.
func repairHeadings(chunk string) string {
	if !strings.Contains(chunk, "#") {
		return chunk
	}
	var b strings.Builder
	b.Grow(len(chunk))
	i := 0
	for i < len(chunk) {
		if chunk[i] != '#' {
			b.WriteByte(chunk[i])
			i++
			continue
		}
		j := i
		for j < len(chunk) && chunk[j] == '#' {
			j++
		}
		run := j - i
		atLineStart := i == 0 || chunk[i-1] == '\n'
		hasSpace := j < len(chunk) && (chunk[j] == ' ' || chunk[j] == '\t' || chunk[j] == '\n')
		followedByLetter := j < len(chunk) && isLetterStart(chunk[j])

		if run > 6 || (atLineStart && hasSpace) || (run == 1 && !atLineStart) || (!hasSpace && !followedByLetter) {
			b.WriteString(chunk[i:j])
			i = j
			continue
		}
		// Malformed: re-emit on its own line with proper spacing.
		b.WriteByte('\n')
		b.WriteString(chunk[i:j])
		if !hasSpace {
			b.WriteByte(' ')
		}
		i = j
	}
	return b.String()
}

func isLetterStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// repairLabelList breaks "label: - item" so the item starts its own line.
func repairLabelList(chunk string) string {
	chunk = strings.ReplaceAll(chunk, ": - ", ":\n- ")
	return strings.ReplaceAll(chunk, ":- ", ":\n- ")
}

// splitJammedMarkers forces a mid-line bullet or numbered marker onto a new
// line when it introduces bold, code, link, or capitalized text, and treats
// a bold run followed by " - " as the start of the next item.
func splitJammedMarkers(chunk string) string {
	chunk = jamDashRe.ReplaceAllString(chunk, "$1\n- $2")
	chunk = jamNumRe.ReplaceAllString(chunk, "$1\n$2. $3")
	return boldItemRe.ReplaceAllString(chunk, "**\n- ")
}

// trimLeadingBlank drops a blank first line left behind by heading repair.
// A single leading newline is kept so a repaired heading stays on its own
// line even at the start of the text.
func trimLeadingBlank(text string) string {
	if strings.HasPrefix(text, "\n\n") {
		return text[1:]
	}
	return text
}

// spaceListBlocks inserts the blank line markdown needs between a paragraph
// and an adjacent list block, both entering and leaving the list.
func spaceListBlocks(chunk string) string {
	if !strings.Contains(chunk, "\n") {
		return chunk
	}
	lines := strings.Split(chunk, "\n")
	out := make([]string, 0, len(lines)+4)
	for i, line := range lines {
		out = append(out, line)
		if i+1 >= len(lines) {
			continue
		}
		next := lines[i+1]
		if isBlank(line) || isBlank(next) || isFenceLine(line) || isFenceLine(next) {
			continue
		}
		if IsListLine(line) != IsListLine(next) {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

// hardenLineBreaks appends the two-space markdown hard break to a line when
// the following newline is not a recognized block boundary, so renderers
// that soft-wrap single newlines still show the break the model intended.
func hardenLineBreaks(chunk string) string {
	if !strings.Contains(chunk, "\n") {
		return chunk
	}
	lines := strings.Split(chunk, "\n")
	for i := 0; i+1 < len(lines); i++ {
		cur, next := lines[i], lines[i+1]
		if isBlank(cur) || isBlank(next) {
			continue
		}
		if strings.HasSuffix(cur, "  ") {
			continue
		}
		if isFenceLine(cur) || isFenceLine(next) {
			continue
		}
		if isBlockquoteLine(cur) || isBlockquoteLine(next) {
			continue
		}
		if startsBlock(next) {
			continue
		}
		lines[i] = cur + "  "
	}
	return strings.Join(lines, "\n")
}

// startsBlock reports whether a line opens a block-level construct, making
// the newline before it a structural boundary.
func startsBlock(line string) bool {
	return isHeadingLine(line) ||
		IsListLine(line) ||
		IsRuleLine(line) ||
		isTableLine(line) ||
		isDisplayMathStart(line)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

func isBlockquoteLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ">")
}

func isHeadingLine(line string) bool {
	t := strings.TrimSpace(line)
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && n < len(t) && (t[n] == ' ' || t[n] == '\t')
}

// IsListLine reports whether a line is a bullet or numbered list item.
func IsListLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ") {
		return true
	}
	n := 0
	for n < len(t) && t[n] >= '0' && t[n] <= '9' {
		n++
	}
	if n == 0 || n+1 >= len(t) {
		return false
	}
	return (t[n] == '.' || t[n] == ')') && t[n+1] == ' '
}

// IsRuleLine reports whether a line is a horizontal rule: three or more
// repeated -, *, or _ with nothing else but whitespace.
func IsRuleLine(line string) bool {
	return ruleLineRe.MatchString(line)
}

// IsTableDividerLine reports whether a line is a table header/body divider.
func IsTableDividerLine(line string) bool {
	return tableDividerRe.MatchString(strings.TrimSpace(line))
}

// IsTableHeaderLine reports whether a line could open a table: it must carry
// at least three pipe-separated fields.
func IsTableHeaderLine(line string) bool {
	return strings.Contains(line, "|") && pipeFieldCount(line) >= 3
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func isDisplayMathStart(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "$$") || strings.HasPrefix(t, `\[`) || strings.HasPrefix(t, `\begin{`)
}

// pipeFieldCount counts the cells a pipe-delimited line would produce,
// ignoring empty edge cells from leading/trailing pipes.
func pipeFieldCount(line string) int {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) > 0 && strings.TrimSpace(fields[0]) == "" {
		fields = fields[1:]
	}
	if len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	return len(fields)
}
