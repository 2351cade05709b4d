package segmentify

import (
	"sync"

	"github.com/riverfjs/segmentify-go/internal/types"
)

// Exported type aliases.
type Role = types.Role
type MathToken = types.MathToken
type ThinkingSplit = types.ThinkingSplit
type SegmentConfig = types.SegmentConfig

const (
	RoleUser      = types.RoleUser
	RoleAssistant = types.RoleAssistant
	RoleSystem    = types.RoleSystem
	RoleTool      = types.RoleTool
)

var (
	defaultConfig     *SegmentConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default segmentation configuration (singleton).
func DefaultConfig() *SegmentConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultSegmentConfig()
	})
	return defaultConfig
}
