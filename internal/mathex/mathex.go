// Package mathex extracts inline math spans into placeholder tokens.
//
// Inline math in model output is ambiguous: $...$ wraps prices, prose, and
// genuine LaTeX alike. The extractor locates candidate spans with the delim
// scanners and runs each through a small classifier; rejected spans stay in
// the text byte for byte. Accepted spans are replaced with reserved
// placeholder strings the renderer resolves back to math at paint time.
package mathex

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/segmentify-go/internal/delim"
	"github.com/riverfjs/segmentify-go/internal/types"
)

var (
	currencyGroupedRe = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d{1,2})?$`)
	currencyPlainRe   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Extractor rewrites inline math spans to placeholders. The counter is
// shared across every chunk of one segmentation call, so placeholders never
// collide within a message.
type Extractor struct {
	cfg     *types.SegmentConfig
	counter int
	tokens  []types.MathToken
}

// New creates an Extractor for one segmentation call.
func New(cfg *types.SegmentConfig) *Extractor {
	if cfg == nil {
		cfg = types.DefaultSegmentConfig()
	}
	return &Extractor{cfg: cfg}
}

// Tokens returns every token extracted so far, in placeholder order.
func (e *Extractor) Tokens() []types.MathToken {
	return e.tokens
}

// Extract scans text left to right for \(...\) and single-$ spans, replacing
// accepted math with placeholders. Rejected and unterminated spans are
// preserved verbatim; after a rejection, scanning resumes right after the
// opener so a later well-formed span is still found.
func (e *Extractor) Extract(text string) string {
	if !strings.Contains(text, "$") && !strings.Contains(text, `\(`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for {
		open, ok := delim.FindNextOpen(text, cursor, delim.InlineCatalog)
		if !ok {
			b.WriteString(text[cursor:])
			break
		}
		b.WriteString(text[cursor:open.Start])

		close_, ok := delim.FindNextClose(text, open.End, open.Delim)
		if !ok {
			// Unterminated span: opener and remainder are literal text.
			b.WriteString(text[open.Start:])
			break
		}

		interior := text[open.End:close_.Start]
		if e.accept(interior, open.Delim) {
			placeholder := e.cfg.PlaceholderPrefix + strconv.Itoa(e.counter) + e.cfg.PlaceholderSuffix
			e.counter++
			e.tokens = append(e.tokens, types.MathToken{
				Placeholder: placeholder,
				Latex:       strings.TrimSpace(interior),
			})
			b.WriteString(placeholder)
			cursor = close_.End
			continue
		}

		// Not math. Emit the opener and rescan from just past it; the
		// closer we found may turn out to open a real span further on.
		b.WriteString(text[open.Start:open.End])
		cursor = open.End
	}
	return b.String()
}

// accept decides whether a delimited interior is inline math.
func (e *Extractor) accept(interior string, d delim.Delimiter) bool {
	trimmed := strings.TrimSpace(interior)
	if trimmed == "" {
		return false
	}
	if strings.Contains(interior, "\n") {
		return false
	}
	if strings.Contains(interior, `\begin{`) || strings.Contains(interior, `\end{`) {
		// Environments are display math, not inline.
		return false
	}
	if d.Open == `\(` {
		return true
	}
	if currencyGroupedRe.MatchString(trimmed) || currencyPlainRe.MatchString(trimmed) {
		return false
	}
	return looksLikeMath(trimmed, e.cfg.MaxInlineMathLen)
}

// looksLikeMath is the heuristic classifier for $-delimited spans. It is
// approximate on purpose; the thresholds are pinned by tests and must not
// drift silently.
func looksLikeMath(s string, maxLen int) bool {
	if utf8.RuneCountInString(s) > maxLen {
		return false
	}
	if strings.ContainsAny(s, `\+-*/=<>^_[]{}`) {
		return true
	}

	hasDigit := false
	hasLetter := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			hasDigit = true
		} else if unicode.IsLetter(r) {
			hasLetter = true
		}
	}

	words := strings.Fields(s)
	if len(words) > 1 {
		// Multi-word spans are prose that happens to sit between dollar
		// signs, even when digits are present ("$5 and solve $").
		return false
	}
	if hasDigit && !hasLetter {
		return false
	}
	if hasDigit && hasLetter {
		return true
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
