// Package segmentify partitions raw language-model output into typed,
// render-ready segments.
//
// The pipeline takes one UTF-8 string plus a role and deterministically
// produces an ordered segment sequence: markdown prose, display math, fenced
// code, horizontal rules, and tables, along with a visible/reasoning split
// for assistant messages. It is a pure function of its input: no I/O, no
// shared state, safe to re-run on every streaming update.
//
// Stages, in order:
//   - reasoning split: <think>...</think> spans go to a separate string
//   - normalization: marker spacing, jammed list items, break tags repaired
//   - inline math extraction: accepted $...$ and \(...\) spans become
//     placeholder tokens; currency and prose are left untouched
//   - block segmentation: code fences first, then display math, then
//     line-oriented structure
//
// Example:
//
//	msg := segmentify.Segmentify(raw, segmentify.RoleAssistant)
//	for _, seg := range msg.Segments {
//	    switch s := seg.(type) {
//	    case *segmentify.Markdown:
//	        // style prose, substituting msg.MathTokens placeholders
//	    case *segmentify.Math:
//	        // typeset s.Latex as a display block
//	    case *segmentify.Code:
//	        // highlight s.Code as s.Language
//	    case *segmentify.Rule:
//	        // draw a divider
//	    case *segmentify.Table:
//	        // lay out cells from segmentify.ParseTable(s)
//	    }
//	}
package segmentify

import (
	"github.com/riverfjs/segmentify-go/internal/normalize"
	"github.com/riverfjs/segmentify-go/internal/segmenter"
	"github.com/riverfjs/segmentify-go/internal/thinking"
	"github.com/riverfjs/segmentify-go/internal/util"
)

// Message is the segmented form of one chat message.
type Message struct {
	// Segments is the ordered visible content.
	Segments []Segment
	// Reasoning is the concatenated contents of the message's reasoning
	// spans, empty for non-assistant roles and messages without them.
	Reasoning string
	// MathTokens maps the placeholders embedded in markdown segments back to
	// their LaTeX payloads, in left-to-right order of appearance.
	MathTokens []MathToken
}

// Segmentify runs the full pipeline on one message.
//
// Reasoning extraction applies only when role is RoleAssistant; other roles
// pass through to normalization directly. The call never fails: malformed
// input is reclassified as literal text, and empty input yields a single
// whitespace markdown segment.
func Segmentify(content string, role Role, opts ...Option) *Message {
	options := applyOptions(opts...)
	cfg := options.Config

	visible := content
	reasoning := ""
	if role == RoleAssistant {
		split := thinking.Split(content, cfg.ThinkOpenTag, cfg.ThinkCloseTag)
		visible = split.Visible
		reasoning = split.Reasoning
	}

	normalized := normalize.Normalize(visible)
	raw, tokens := segmenter.Run(normalized, cfg)

	segments := make([]Segment, 0, len(raw))
	for _, s := range raw {
		switch s.Kind {
		case segmenter.KindMarkdown:
			segments = append(segments, &Markdown{Text: s.Text})
		case segmenter.KindMath:
			segments = append(segments, &Math{Latex: s.Latex, Display: s.Display, Raw: s.Raw})
		case segmenter.KindCode:
			segments = append(segments, &Code{
				Code:     s.Code,
				Language: util.CanonicalLanguage(s.Language),
				Raw:      s.Raw,
			})
		case segmenter.KindRule:
			segments = append(segments, &Rule{})
		case segmenter.KindTable:
			segments = append(segments, &Table{Raw: s.Raw})
		}
	}

	return &Message{Segments: segments, Reasoning: reasoning, MathTokens: tokens}
}

// Normalize exposes the markdown repair stage on its own. The result is what
// the segmenter would consume for the same input.
func Normalize(text string) string {
	return normalize.Normalize(text)
}

// SplitThinking extracts reasoning spans from text using the default tags.
func SplitThinking(text string) ThinkingSplit {
	cfg := DefaultConfig()
	return thinking.Split(text, cfg.ThinkOpenTag, cfg.ThinkCloseTag)
}
