// Package thinking extracts reasoning spans from assistant output.
package thinking

import (
	"strings"

	"github.com/riverfjs/segmentify-go/internal/types"
)

// Split separates <think>...</think> spans from text. Tags are matched
// literally with no escaping and no nesting: the first close tag after an
// open tag closes it. An unterminated open tag consumes the rest of the
// string as reasoning. Stray close tags are stripped from the visible side.
func Split(text, openTag, closeTag string) types.ThinkingSplit {
	var visible strings.Builder
	var spans []string

	rest := text
	for {
		i := strings.Index(rest, openTag)
		if i < 0 {
			visible.WriteString(rest)
			break
		}
		visible.WriteString(rest[:i])
		rest = rest[i+len(openTag):]

		j := strings.Index(rest, closeTag)
		if j < 0 {
			if span := strings.TrimSpace(rest); span != "" {
				spans = append(spans, span)
			}
			break
		}
		if span := strings.TrimSpace(rest[:j]); span != "" {
			spans = append(spans, span)
		}
		rest = rest[j+len(closeTag):]
	}

	vis := strings.ReplaceAll(visible.String(), closeTag, "")
	return types.ThinkingSplit{
		Visible:   vis,
		Reasoning: strings.TrimSpace(strings.Join(spans, "\n\n")),
	}
}
