package segmentify

import "github.com/riverfjs/segmentify-go/internal/types"

// SegmentOptions holds options for a segmentation call.
type SegmentOptions struct {
	Config *SegmentConfig
}

// Option is a function that configures SegmentOptions.
type Option func(*SegmentOptions)

// WithConfig sets a custom SegmentConfig.
func WithConfig(config *SegmentConfig) Option {
	return func(opts *SegmentOptions) {
		if config != nil {
			opts.Config = config
		}
	}
}

// WithThinkTags overrides the reasoning tag pair (some models emit
// <thought> instead of <think>).
func WithThinkTags(open, close string) Option {
	return func(opts *SegmentOptions) {
		opts.Config.ThinkOpenTag = open
		opts.Config.ThinkCloseTag = close
	}
}

// defaultSegmentOptions returns options over a private copy of the default
// config, so per-call overrides never leak into the singleton.
func defaultSegmentOptions() *SegmentOptions {
	cfg := *types.DefaultSegmentConfig()
	return &SegmentOptions{Config: &cfg}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *SegmentOptions {
	options := defaultSegmentOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
