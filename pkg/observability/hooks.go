// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about pipeline execution and cache
// operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnDecodeStart(ctx, source)
//	// ... decode ...
//	observability.Pipeline().OnDecodeComplete(ctx, source, facets, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the decomposition pipeline.
type PipelineHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, source string)
	OnDecodeComplete(ctx context.Context, source string, facetCount int, duration time.Duration, err error)

	// Walk events
	OnWalkStart(ctx context.Context, facetCount int)
	OnWalkComplete(ctx context.Context, pathLength int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Defaults
// =============================================================================

type nopPipelineHooks struct{}

func (nopPipelineHooks) OnDecodeStart(context.Context, string)                               {}
func (nopPipelineHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {}
func (nopPipelineHooks) OnWalkStart(context.Context, int)                                    {}
func (nopPipelineHooks) OnWalkComplete(context.Context, int, time.Duration, error)           {}

type nopCacheHooks struct{}

func (nopCacheHooks) OnCacheHit(context.Context, string)      {}
func (nopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (nopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = nopPipelineHooks{}
	cacheHooks    CacheHooks    = nopCacheHooks{}
)

// SetPipelineHooks registers pipeline hooks. Pass nil to restore the no-op
// default. Call at startup, before the pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		pipelineHooks = nopPipelineHooks{}
		return
	}
	pipelineHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = nopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
