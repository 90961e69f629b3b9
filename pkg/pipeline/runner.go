// Package pipeline orchestrates the decode, adjacency and walk stages with
// caching and observability.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"meshwalk/pkg/cache"
	"meshwalk/pkg/mesh"
	"meshwalk/pkg/observability"
	"meshwalk/pkg/stl"
	"meshwalk/pkg/walk"
)

// Runner executes the decomposition pipeline with caching.
// Both the CLI and the HTTP API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Result holds the outputs of one pipeline run.
type Result struct {
	RunID     string
	MeshHash  string
	Mesh      *stl.Mesh
	Adjacency *mesh.Adjacency
	Order     []int
	Cached    bool
	Stats     Stats
}

// Stats records per-stage durations.
type Stats struct {
	DecodeTime    time.Duration
	AdjacencyTime time.Duration
	WalkTime      time.Duration
}

// cachedWalk is the cache serialization of a computed order.
type cachedWalk struct {
	FacetCount int   `json:"facet_count"`
	Order      []int `json:"order"`
}

// Decompose runs the complete decode, adjacency and walk pipeline on raw STL
// bytes. Walk results are cached by the SHA-256 of the input plus the search
// options; decode and adjacency always run, since the mesh itself is needed
// for export.
func (r *Runner) Decompose(ctx context.Context, data []byte, opts Options) (*Result, error) {
	opts.setDefaults()

	result := &Result{
		RunID:    uuid.NewString(),
		MeshHash: cache.Hash(data),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Source)
	m, err := stl.Decoder{Warn: logger.Warnf}.Decode(data)
	result.Stats.DecodeTime = time.Since(decodeStart)
	facets := 0
	if m != nil {
		facets = m.FacetCount()
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Source, facets, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", opts.Source, err)
	}
	result.Mesh = m
	logger.Info("decoded mesh", "facets", m.FacetCount(), "duration", result.Stats.DecodeTime)

	// Stage 2: adjacency
	adjStart := time.Now()
	result.Adjacency = mesh.Build(m)
	result.Stats.AdjacencyTime = time.Since(adjStart)
	logger.Debug("built adjacency graph",
		"edges", result.Adjacency.EdgeCount(), "duration", result.Stats.AdjacencyTime)

	// Stage 3: walk (cached)
	key := walkKey(result.MeshHash, opts)
	if !opts.Refresh {
		if entry, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var cached cachedWalk
			if json.Unmarshal(entry, &cached) == nil && cached.FacetCount == m.FacetCount() {
				observability.Cache().OnCacheHit(ctx, "walk")
				logger.Debug("reusing cached walk", "length", len(cached.Order))
				result.Order = cached.Order
				result.Cached = true
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "walk")
	}

	walkStart := time.Now()
	observability.Pipeline().OnWalkStart(ctx, m.FacetCount())
	order, err := walk.Decompose(m, result.Adjacency, walk.Options{
		MaxDepth: opts.MaxDepth,
		Start:    opts.Start,
	})
	result.Stats.WalkTime = time.Since(walkStart)
	observability.Pipeline().OnWalkComplete(ctx, len(order), result.Stats.WalkTime, err)
	if err != nil {
		return nil, err
	}
	result.Order = order
	logger.Info("computed decomposition", "length", len(order), "duration", result.Stats.WalkTime)

	if entry, err := json.Marshal(cachedWalk{FacetCount: m.FacetCount(), Order: order}); err == nil {
		if err := r.Cache.Set(ctx, key, entry, opts.CacheTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "walk", len(entry))
		}
	}
	return result, nil
}

// walkKey builds the cache key for a walk: the mesh content hash plus every
// option that changes the result.
func walkKey(meshHash string, opts Options) string {
	return fmt.Sprintf("walk:%s:d%d:s%d", meshHash, opts.MaxDepth, opts.Start)
}
