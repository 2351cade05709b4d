package types

// Role identifies the author of a chat message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
	RoleTool
)

// String returns the string representation of Role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleSystem:
		return "system"
	case RoleTool:
		return "tool"
	default:
		return "unknown"
	}
}

// MathToken pairs a placeholder embedded in rewritten text with the LaTeX
// payload it stands for. Tokens are created during inline math extraction and
// consumed by the renderer; they are never persisted.
type MathToken struct {
	Placeholder string
	Latex       string
}

// ThinkingSplit separates a message into its visible remainder and the
// concatenated contents of its reasoning spans.
type ThinkingSplit struct {
	Visible   string
	Reasoning string
}

// SegmentConfig controls the segmentation pipeline.
type SegmentConfig struct {
	// ThinkOpenTag and ThinkCloseTag delimit reasoning spans in assistant
	// output. Defaults to <think>...</think>.
	ThinkOpenTag  string
	ThinkCloseTag string

	// PlaceholderPrefix and PlaceholderSuffix frame the per-call counter in
	// inline math placeholders. The alphabet must stay out of the way of
	// ordinary prose.
	PlaceholderPrefix string
	PlaceholderSuffix string

	// MaxInlineMathLen is the character cutoff above which a $-delimited span
	// is treated as prose rather than math.
	MaxInlineMathLen int
}

// DefaultSegmentConfig returns the default segmentation configuration.
func DefaultSegmentConfig() *SegmentConfig {
	return &SegmentConfig{
		ThinkOpenTag:      "<think>",
		ThinkCloseTag:     "</think>",
		PlaceholderPrefix: "ZZZMATHPLACEHOLDER",
		PlaceholderSuffix: "ZZZ",
		MaxInlineMathLen:  120,
	}
}
