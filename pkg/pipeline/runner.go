package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/cache"
	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/observability"
	"github.com/meridian/starchart/pkg/render"
	"github.com/meridian/starchart/pkg/sector"
	"github.com/meridian/starchart/pkg/starmap"
)

// SectorSource provides sector records for a galaxy. *universe.Client is
// the production implementation.
type SectorSource interface {
	Sectors(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error)
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Source SectorSource
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given source, cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(source SectorSource, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: source,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → build → fit → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	observability.Pipeline().OnFetchStart(ctx, opts.GalaxyID.String())
	sectors, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	observability.Pipeline().OnFetchComplete(ctx, opts.GalaxyID.String(), len(sectors), time.Since(fetchStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.SectorCount = len(sectors)
	result.CacheInfo.FetchHit = fetchHit

	r.Logger.Info("fetched sectors",
		"galaxy", opts.GalaxyID,
		"sectors", len(sectors),
		"cached", fetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(sectors))
	g, buildHit, err := r.BuildWithCacheInfo(ctx, sectors, opts)
	observability.Pipeline().OnBuildComplete(ctx, len(g.Edges), time.Since(buildStart), err)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.BuildHit = buildHit

	if data, err := json.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("built star map",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"duration", result.Stats.BuildTime)

	// Stage 3: Fit. Pure arithmetic, cheaper than a cache round-trip.
	result.Transform = starmap.Fit(g.Nodes, opts.Viewport)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.Transform, result.GraphHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo pulls sector records with caching and reports whether
// the cache served them.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) ([]sector.Sector, bool, error) {
	cacheKey := r.Keyer.SectorsKey(opts.GalaxyID.String())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var sectors []sector.Sector
			if err := json.Unmarshal(data, &sectors); err == nil {
				observability.Cache().OnCacheHit(ctx, "sectors")
				return sectors, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "sectors")

	sectors, err := r.Source.Sectors(ctx, opts.GalaxyID)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(sectors); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSectors)
		observability.Cache().OnCacheSet(ctx, "sectors", len(data))
	}

	return sectors, false, nil
}

// BuildWithCacheInfo builds the star map with caching and reports whether
// the cache served it.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, sectors []sector.Sector, opts Options) (starmap.Graph, bool, error) {
	cacheKey := r.Keyer.GraphKey(opts.GalaxyID.String(), opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var g starmap.Graph
			if err := json.Unmarshal(data, &g); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g := starmap.Build(starmap.Entities(sectors), opts.BuildOptions())

	if data, err := json.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g starmap.Graph, tr starmap.Transform, graphHash string, opts Options) (map[string][]byte, bool, error) {
	// Try to serve all formats from cache first.
	allCached := true
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	renderOpts := render.Options{
		Detailed:         opts.Detailed,
		ShowUndiscovered: opts.ShowUndiscovered,
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatDOT:
			data = []byte(render.ToDOT(g, renderOpts))
		case FormatSVG:
			data, err = render.RenderSVG(ctx, render.ToDOT(g, renderOpts))
		case FormatJSON:
			data, err = render.ToJSON(g, tr)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		rendered[format] = data

		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
