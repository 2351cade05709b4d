// Package delim locates unescaped math and code delimiters in raw text.
//
// The scanners here are deliberately literal: model output is not trusted to
// be well-formed, so matching is a linear search with a handful of exclusion
// rules rather than a grammar. Everything operates on byte offsets; all
// delimiter literals are ASCII, so offsets never land inside a UTF-8 sequence.
package delim

import "strings"

// Kind classifies what a delimiter pair wraps.
type Kind int

const (
	KindMath Kind = iota
	KindCode
)

// Delimiter is a literal open/close string pair.
type Delimiter struct {
	Open    string
	Close   string
	Kind    Kind
	Display bool
}

// Fence is the triple-backtick code fence pair.
var Fence = Delimiter{Open: "```", Close: "```", Kind: KindCode}

// InlineCatalog lists inline math delimiters in priority order.
// The single $ never claims a $$ run; see openExcluded.
var InlineCatalog = []Delimiter{
	{Open: `\(`, Close: `\)`, Kind: KindMath},
	{Open: `$`, Close: `$`, Kind: KindMath},
}

// DisplayCatalog lists display math delimiters in priority order. Starred
// environments precede their unstarred forms: the unstarred literal is a
// prefix of the starred one and would otherwise win the same-offset tie.
var DisplayCatalog = []Delimiter{
	{Open: `$$`, Close: `$$`, Kind: KindMath, Display: true},
	{Open: `\[`, Close: `\]`, Kind: KindMath, Display: true},
	{Open: `\begin{equation*}`, Close: `\end{equation*}`, Kind: KindMath, Display: true},
	{Open: `\begin{equation}`, Close: `\end{equation}`, Kind: KindMath, Display: true},
	{Open: `\begin{align*}`, Close: `\end{align*}`, Kind: KindMath, Display: true},
	{Open: `\begin{align}`, Close: `\end{align}`, Kind: KindMath, Display: true},
	{Open: `\begin{multline*}`, Close: `\end{multline*}`, Kind: KindMath, Display: true},
	{Open: `\begin{multline}`, Close: `\end{multline}`, Kind: KindMath, Display: true},
	{Open: `\begin{cases*}`, Close: `\end{cases*}`, Kind: KindMath, Display: true},
	{Open: `\begin{cases}`, Close: `\end{cases}`, Kind: KindMath, Display: true},
}

// Match is one located delimiter occurrence. Start/End bound the delimiter
// literal itself, not the span it wraps.
type Match struct {
	Start int
	End   int
	Delim Delimiter
}

// IsEscaped reports whether the character at index is escaped, i.e. preceded
// by an odd number of consecutive backslashes. Backslash is ASCII, so a
// byte-wise backward walk counts code points correctly in UTF-8.
func IsEscaped(text string, index int) bool {
	count := 0
	for i := index - 1; i >= 0 && text[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// openExcluded applies delimiter-specific rules that disqualify an otherwise
// literal opener match.
func openExcluded(text string, pos int, d Delimiter) bool {
	if d.Open != "$" {
		return false
	}
	// A $ adjacent to another $ belongs to a $$ run.
	if pos+1 < len(text) && text[pos+1] == '$' {
		return true
	}
	if pos > 0 && text[pos-1] == '$' {
		return true
	}
	// 5$ is price notation, not an opener.
	if pos > 0 && text[pos-1] >= '0' && text[pos-1] <= '9' {
		return true
	}
	return false
}

// closeExcluded disqualifies closer matches. A lone $ that is part of a $$
// run never closes a single-$ span.
func closeExcluded(text string, pos int, d Delimiter) bool {
	if d.Close != "$" {
		return false
	}
	if pos+1 < len(text) && text[pos+1] == '$' {
		return true
	}
	if pos > 0 && text[pos-1] == '$' {
		return true
	}
	return false
}

// FindNextOpen returns the earliest unescaped opener at or after from among
// the catalog's delimiters. Ties on start offset are broken by catalog order.
func FindNextOpen(text string, from int, catalog []Delimiter) (Match, bool) {
	best := Match{Start: -1}
	for _, d := range catalog {
		pos := findLiteral(text, from, d.Open, func(p int) bool {
			return openExcluded(text, p, d)
		})
		if pos < 0 {
			continue
		}
		if best.Start == -1 || pos < best.Start {
			best = Match{Start: pos, End: pos + len(d.Open), Delim: d}
		}
	}
	return best, best.Start >= 0
}

// FindNextClose returns the next unescaped closer for d at or after from.
// Returns false if the span is unterminated; the caller must then treat the
// remainder as literal text.
func FindNextClose(text string, from int, d Delimiter) (Match, bool) {
	pos := findLiteral(text, from, d.Close, func(p int) bool {
		return closeExcluded(text, p, d)
	})
	if pos < 0 {
		return Match{}, false
	}
	return Match{Start: pos, End: pos + len(d.Close), Delim: d}, true
}

// findLiteral scans for the next occurrence of lit that is neither escaped
// nor excluded. Returns -1 if none exists before end of string.
func findLiteral(text string, from int, lit string, excluded func(int) bool) int {
	i := from
	for i <= len(text)-len(lit) {
		idx := strings.Index(text[i:], lit)
		if idx < 0 {
			return -1
		}
		pos := i + idx
		if IsEscaped(text, pos) || excluded(pos) {
			i = pos + 1
			continue
		}
		return pos
	}
	return -1
}
