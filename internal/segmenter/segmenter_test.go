package segmenter

import (
	"strings"
	"testing"
)

func kinds(segments []Segment) []Kind {
	out := make([]Kind, len(segments))
	for i, s := range segments {
		out[i] = s.Kind
	}
	return out
}

func findKind(segments []Segment, k Kind) *Segment {
	for i := range segments {
		if segments[i].Kind == k {
			return &segments[i]
		}
	}
	return nil
}

func countKind(segments []Segment, k Kind) int {
	n := 0
	for _, s := range segments {
		if s.Kind == k {
			n++
		}
	}
	return n
}

func TestRun_CodeFence(t *testing.T) {
	segments, _ := Run("Before\n```go\nfmt.Println(1)\n```\nAfter", nil)
	code := findKind(segments, KindCode)
	if code == nil {
		t.Fatal("Run() should produce a code segment")
	}
	if code.Language != "go" {
		t.Errorf("Language = %q, want go", code.Language)
	}
	if code.Code != "fmt.Println(1)" {
		t.Errorf("Code = %q, want %q", code.Code, "fmt.Println(1)")
	}
	if countKind(segments, KindMarkdown) != 2 {
		t.Errorf("kinds = %v, want markdown on both sides", kinds(segments))
	}
}

func TestRun_FenceWithoutLanguage(t *testing.T) {
	segments, _ := Run("```\nplain text\n```", nil)
	code := findKind(segments, KindCode)
	if code == nil {
		t.Fatal("Run() should produce a code segment")
	}
	if code.Language != "" {
		t.Errorf("Language = %q, want empty", code.Language)
	}
	if code.Code != "plain text" {
		t.Errorf("Code = %q, want %q", code.Code, "plain text")
	}
}

func TestRun_FenceOpacity(t *testing.T) {
	segments, tokens := Run("```\n$x$ and - list\n### h\n---\n```", nil)
	if len(tokens) != 0 {
		t.Fatalf("tokens = %d, fence contents must not produce math", len(tokens))
	}
	if len(segments) != 1 || segments[0].Kind != KindCode {
		t.Fatalf("kinds = %v, want a single code segment", kinds(segments))
	}
	if segments[0].Code != "$x$ and - list\n### h\n---" {
		t.Errorf("Code = %q, delimiters inside fences must be untouched", segments[0].Code)
	}
}

func TestRun_UnterminatedFenceIsMarkdown(t *testing.T) {
	segments, _ := Run("text\n```go\ncode", nil)
	if len(segments) != 1 || segments[0].Kind != KindMarkdown {
		t.Fatalf("kinds = %v, want a single markdown segment", kinds(segments))
	}
	if !strings.Contains(segments[0].Text, "```go") {
		t.Errorf("Text = %q, fence marker must stay visible", segments[0].Text)
	}
}

func TestRun_DisplayMath(t *testing.T) {
	segments, _ := Run("Intro\n$$\\frac{1}{3}$$\nDone", nil)
	math := findKind(segments, KindMath)
	if math == nil {
		t.Fatal("Run() should produce a math segment")
	}
	if !math.Display {
		t.Error("Display = false, want true")
	}
	if math.Latex != `\frac{1}{3}` {
		t.Errorf("Latex = %q, want %q", math.Latex, `\frac{1}{3}`)
	}
	if math.Raw != `$$\frac{1}{3}$$` {
		t.Errorf("Raw = %q, want original span", math.Raw)
	}
}

func TestRun_BracketDisplayMath(t *testing.T) {
	segments, _ := Run(`\[x^2\]`, nil)
	math := findKind(segments, KindMath)
	if math == nil {
		t.Fatal("Run() should produce a math segment")
	}
	if math.Latex != "x^2" {
		t.Errorf("Latex = %q, want x^2", math.Latex)
	}
}

func TestRun_EnvironmentDisplayMath(t *testing.T) {
	segments, _ := Run("\\begin{align}a&=b\\end{align}", nil)
	math := findKind(segments, KindMath)
	if math == nil {
		t.Fatal("Run() should produce a math segment")
	}
	if math.Latex != "a&=b" {
		t.Errorf("Latex = %q, want a&=b", math.Latex)
	}
}

func TestRun_InlineMathBecomesToken(t *testing.T) {
	segments, tokens := Run("solve $x^2$ now", nil)
	if len(tokens) != 1 {
		t.Fatalf("tokens = %d, want 1", len(tokens))
	}
	md := findKind(segments, KindMarkdown)
	if md == nil {
		t.Fatal("Run() should produce a markdown segment")
	}
	if !strings.Contains(md.Text, tokens[0].Placeholder) {
		t.Errorf("Text = %q, missing placeholder %q", md.Text, tokens[0].Placeholder)
	}
	if tokens[0].Latex != "x^2" {
		t.Errorf("Latex = %q, want x^2", tokens[0].Latex)
	}
}

func TestRun_Rule(t *testing.T) {
	segments, _ := Run("a\n---\nb", nil)
	want := []Kind{KindMarkdown, KindRule, KindMarkdown}
	got := kinds(segments)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestRun_TableBoundary(t *testing.T) {
	in := "| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |\nplain"
	segments, _ := Run(in, nil)
	table := findKind(segments, KindTable)
	if table == nil {
		t.Fatal("Run() should produce a table segment")
	}
	wantBlock := "| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |"
	if table.Raw != wantBlock {
		t.Errorf("Raw = %q, want %q", table.Raw, wantBlock)
	}
	md := findKind(segments, KindMarkdown)
	if md == nil || !strings.Contains(md.Text, "plain") {
		t.Error("trailing non-pipe line must fall out of the table")
	}
}

func TestRun_TableStopsAtBlankLine(t *testing.T) {
	in := "| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |\n\n| x | y | z |"
	segments, _ := Run(in, nil)
	table := findKind(segments, KindTable)
	if table == nil {
		t.Fatal("Run() should produce a table segment")
	}
	if strings.Contains(table.Raw, "| x |") {
		t.Errorf("Raw = %q, blank line must end the table", table.Raw)
	}
}

func TestRun_HeaderWithoutDividerIsMarkdown(t *testing.T) {
	segments, _ := Run("| a | b | c |\nplain", nil)
	if findKind(segments, KindTable) != nil {
		t.Error("header without divider must not open a table")
	}
}

func TestRun_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n  "} {
		segments, tokens := Run(in, nil)
		if len(tokens) != 0 {
			t.Errorf("Run(%q) tokens = %d, want 0", in, len(tokens))
		}
		if len(segments) != 1 || segments[0].Kind != KindMarkdown || segments[0].Text != " " {
			t.Errorf("Run(%q) = %v, want single whitespace markdown segment", in, segments)
		}
	}
}

func TestMergeMarkdown(t *testing.T) {
	in := []Segment{
		{Kind: KindMarkdown, Text: "a"},
		{Kind: KindMarkdown, Text: "b"},
		{Kind: KindRule},
		{Kind: KindMarkdown, Text: "c"},
	}
	out := mergeMarkdown(in)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].Text != "a\nb" {
		t.Errorf("merged Text = %q, want %q", out[0].Text, "a\nb")
	}
	if out[1].Kind != KindRule || out[2].Text != "c" {
		t.Errorf("unexpected merge result: %v", out)
	}
}

func TestRun_MixedDocumentOrder(t *testing.T) {
	in := "Intro $a+b$ text\n\n```py\nx = 1\n```\n\n$$\\sum_i i$$\n\n| h1 | h2 | h3 |\n|---|---|---|\n| 1 | 2 | 3 |\n\n---\n\nOutro"
	segments, tokens := Run(in, nil)
	if len(tokens) != 1 {
		t.Fatalf("tokens = %d, want 1", len(tokens))
	}
	got := kinds(segments)
	want := []Kind{KindMarkdown, KindCode, KindMath, KindTable, KindRule, KindMarkdown}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}
