package pipeline

import "time"

// DefaultCacheTTL is how long cached walks stay valid. Walks are pure
// functions of their key, so the TTL mainly bounds disk usage.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// MaxDepth bounds the walk length; zero means full coverage.
	MaxDepth int

	// Start restricts the search to one start facet. Negative tries every
	// facet in parse order.
	Start int

	// Refresh bypasses the cache read (the result is still written back).
	Refresh bool

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration

	// Source is a display name for the input in logs (file path, "stdin",
	// "http").
	Source string
}

// setDefaults fills in unset option values.
func (o *Options) setDefaults() {
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Source == "" {
		o.Source = "input"
	}
}
