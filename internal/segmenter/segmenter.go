// Package segmenter partitions normalized text into typed render segments.
//
// Precedence is fixed: code fences first (their contents are never parsed
// further), then display math, then line-oriented structure (rules, tables),
// with everything left over accumulating into markdown segments. Inline math
// is extracted from each markdown chunk before the line pass so placeholders
// survive structural splitting intact.
package segmenter

import (
	"strings"

	"github.com/riverfjs/segmentify-go/internal/delim"
	"github.com/riverfjs/segmentify-go/internal/mathex"
	"github.com/riverfjs/segmentify-go/internal/normalize"
	"github.com/riverfjs/segmentify-go/internal/types"
	"github.com/riverfjs/segmentify-go/internal/util"
)

// Kind identifies a segment variant.
type Kind int

const (
	KindMarkdown Kind = iota
	KindMath
	KindCode
	KindRule
	KindTable
)

// Segment is one typed unit of segmenter output. Which fields are populated
// depends on Kind; Raw always holds the original source span where one
// exists (math with its delimiters, code with its fences, the table block).
type Segment struct {
	Kind     Kind
	Text     string
	Latex    string
	Display  bool
	Code     string
	Language string
	Raw      string
}

type runner struct {
	cfg      *types.SegmentConfig
	ex       *mathex.Extractor
	segments []Segment
}

// Run segments text and returns the ordered segments plus the inline math
// tokens extracted along the way. Empty input yields a single whitespace
// markdown segment so the renderer always has something to lay out.
func Run(text string, cfg *types.SegmentConfig) ([]Segment, []types.MathToken) {
	if cfg == nil {
		cfg = types.DefaultSegmentConfig()
	}
	if strings.TrimSpace(text) == "" {
		return []Segment{{Kind: KindMarkdown, Text: " "}}, nil
	}

	r := &runner{cfg: cfg, ex: mathex.New(cfg)}
	r.fencePass(text)
	return mergeMarkdown(r.segments), r.ex.Tokens()
}

// fencePass splits on complete code fences; everything between them goes
// through the math and line passes. An unterminated fence hides nothing: its
// marker and the remainder fall through as markdown.
func (r *runner) fencePass(text string) {
	cur := 0
	for {
		open, ok := delim.FindNextOpen(text, cur, []delim.Delimiter{delim.Fence})
		if !ok {
			r.textChunk(text[cur:])
			return
		}
		close_, ok := delim.FindNextClose(text, open.End, delim.Fence)
		if !ok {
			r.textChunk(text[cur:])
			return
		}
		r.textChunk(text[cur:open.Start])
		r.emitCode(text[open.End:close_.Start], text[open.Start:close_.End])
		cur = close_.End
	}
}

// emitCode turns a fence interior into a code segment, peeling off a leading
// bare-identifier language tag and trailing newlines.
func (r *runner) emitCode(interior, raw string) {
	lang := ""
	payload := interior
	if nl := strings.IndexByte(interior, '\n'); nl >= 0 {
		first := strings.TrimSpace(interior[:nl])
		if util.IsLanguageTag(first) {
			lang = first
			payload = interior[nl+1:]
		} else if first == "" {
			payload = interior[nl+1:]
		}
	}
	payload = strings.TrimRight(payload, "\n")
	r.segments = append(r.segments, Segment{
		Kind:     KindCode,
		Code:     payload,
		Language: lang,
		Raw:      raw,
	})
}

// textChunk excises display math spans, then hands the rest to the markdown
// pass. An unterminated display opener is literal text.
func (r *runner) textChunk(chunk string) {
	cur := 0
	for {
		open, ok := delim.FindNextOpen(chunk, cur, delim.DisplayCatalog)
		if !ok {
			r.markdownChunk(chunk[cur:])
			return
		}
		close_, ok := delim.FindNextClose(chunk, open.End, open.Delim)
		if !ok {
			r.markdownChunk(chunk[cur:])
			return
		}
		r.markdownChunk(chunk[cur:open.Start])
		r.segments = append(r.segments, Segment{
			Kind:    KindMath,
			Latex:   strings.TrimSpace(chunk[open.End:close_.Start]),
			Display: true,
			Raw:     chunk[open.Start:close_.End],
		})
		cur = close_.End
	}
}

// markdownChunk extracts inline math, then walks the chunk line by line for
// rules and tables, flushing accumulated lines as markdown segments.
func (r *runner) markdownChunk(chunk string) {
	if strings.TrimSpace(chunk) == "" {
		return
	}
	rewritten := r.ex.Extract(chunk)

	lines := strings.Split(rewritten, "\n")
	var pending []string
	flush := func() {
		if len(pending) == 0 {
			return
		}
		text := strings.Join(pending, "\n")
		pending = nil
		if strings.TrimSpace(text) == "" {
			return
		}
		r.segments = append(r.segments, Segment{Kind: KindMarkdown, Text: text, Raw: text})
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if normalize.IsRuleLine(line) {
			flush()
			r.segments = append(r.segments, Segment{Kind: KindRule})
			i++
			continue
		}
		if normalize.IsTableHeaderLine(line) && i+1 < len(lines) && normalize.IsTableDividerLine(lines[i+1]) {
			flush()
			j := i + 2
			for j < len(lines) && strings.Contains(lines[j], "|") && strings.TrimSpace(lines[j]) != "" {
				j++
			}
			block := strings.Join(lines[i:j], "\n")
			r.segments = append(r.segments, Segment{Kind: KindTable, Text: block, Raw: block})
			i = j
			continue
		}
		pending = append(pending, line)
		i++
	}
	flush()
}

// mergeMarkdown concatenates runs of adjacent markdown segments. No other
// kinds merge.
func mergeMarkdown(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Kind == KindMarkdown && len(out) > 0 && out[len(out)-1].Kind == KindMarkdown {
			prev := &out[len(out)-1]
			prev.Text = prev.Text + "\n" + s.Text
			prev.Raw = prev.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
