// Package util provides code-language helpers for code segments.
package util

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// langTagRe matches the bare identifier allowed as a fence language tag.
var langTagRe = regexp.MustCompile(`^[A-Za-z0-9_+\-#.]+$`)

// IsLanguageTag reports whether s is a plausible fence language tag.
func IsLanguageTag(s string) bool {
	return s != "" && langTagRe.MatchString(s)
}

// CanonicalLanguage resolves a fence language tag through the chroma lexer
// registry so aliases collapse to one name (golang -> go, js -> javascript).
// Unknown tags are lowercased and passed through.
func CanonicalLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if lexer := lexers.Get(tag); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.ToLower(tag)
}

// languageToExt maps canonical language names to file extensions.
var languageToExt = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"java":       "java",
	"c++":        "cpp",
	"c":          "c",
	"html":       "html",
	"css":        "css",
	"bash":       "sh",
	"shell":      "sh",
	"php":        "php",
	"markdown":   "md",
	"json":       "json",
	"yaml":       "yaml",
	"xml":        "xml",
	"dockerfile": "dockerfile",
	"plaintext":  "txt",
	"toml":       "toml",
	"go":         "go",
	"ruby":       "rb",
	"rust":       "rs",
	"perl":       "pl",
	"swift":      "swift",
	"kotlin":     "kt",
	"sql":        "sql",
	"jsx":        "jsx",
	"tsx":        "tsx",
	"r":          "r",
	"dart":       "dart",
	"scala":      "scala",
}

// GetExt returns the file extension for a language, falling back to txt.
func GetExt(language string) string {
	ext, ok := languageToExt[strings.ToLower(language)]
	if !ok {
		return "txt"
	}
	return ext
}

var filenameRe = regexp.MustCompile(`([a-zA-Z0-9_\-.]+\.[a-zA-Z0-9]+)`)

// SuggestFilename picks a filename for a code payload: a filename mentioned
// in the first lines of the code if one exists, otherwise a generic name
// derived from the language.
func SuggestFilename(code, language string) string {
	lines := strings.Split(strings.TrimSpace(code), "\n")
	sample := ""
	if len(lines) > 0 {
		sample = lines[0]
		if len(lines) > 1 {
			sample += " " + lines[1]
		}
	}
	sample = strings.ReplaceAll(sample, `\`, "")

	ext := GetExt(language)
	for _, match := range filenameRe.FindAllString(sample, -1) {
		if !strings.Contains(match, ".") {
			continue
		}
		if strings.HasSuffix(match, "."+ext) && len(match) <= 24 {
			return match
		}
		return match + "." + ext
	}
	return "snippet." + ext
}
