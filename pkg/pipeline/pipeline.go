// Package pipeline provides the core map-building pipeline for StarChart.
//
// This package implements the complete fetch → build → fit → render pipeline
// used by both the CLI and the API server. Centralizing it keeps caching and
// defaulting behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Pull sector records from the universe service
//  2. Build: Connect sectors into a proximity graph
//  3. Fit: Compute the initial viewport transform
//  4. Render: Generate output artifacts (SVG, DOT, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(client, cache, nil, logger)
//	opts := pipeline.Options{
//	    GalaxyID: galaxyID,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/cache"
	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/starmap"
)

// Defaults shared by the CLI and API so both entry points build the same
// map from the same galaxy.
const (
	// DefaultLinkThreshold is the projected distance below which two sectors
	// are considered adjacent. Matches the frontend's grid spacing.
	DefaultLinkThreshold = 60.0

	// DefaultSeed seeds long-range connector placement for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultWidth is the default drawing surface width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default drawing surface height in pixels.
	DefaultHeight = 600.0

	// DefaultVisibleFraction leaves a 5% margin on each side of the fitted map.
	DefaultVisibleFraction = 0.9
)

// DefaultScaleExtent is the default [min, max] zoom bound.
var DefaultScaleExtent = [2]float64{0.5, 5}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the map pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	GalaxyID uuid.UUID `json:"galaxy_id"`
	Refresh  bool      `json:"refresh,omitempty"`

	// Build options
	LinkThreshold   float64            `json:"link_threshold,omitempty"`
	LongRangeChance float64            `json:"long_range_chance,omitempty"`
	Seed            uint64             `json:"seed,omitempty"`
	Projection      starmap.Projection `json:"projection,omitempty"`

	// Fit options
	Viewport starmap.Viewport `json:"viewport,omitempty"`

	// Render options
	Formats          []string `json:"formats,omitempty"`
	Detailed         bool     `json:"detailed,omitempty"`
	ShowUndiscovered bool     `json:"show_undiscovered,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built star map.
	Graph starmap.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Transform is the fitted initial camera position.
	Transform starmap.Transform

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SectorCount int
	EdgeCount   int
	FetchTime   time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the sector list came from cache
	BuildHit  bool // Whether the built graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GalaxyID == uuid.Nil {
		return errors.New(errors.ErrCodeInvalidInput, "galaxy_id is required")
	}
	if o.LinkThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "link_threshold must not be negative")
	}
	if o.LinkThreshold == 0 {
		o.LinkThreshold = DefaultLinkThreshold
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	o.SetViewportDefaults()
	if err := o.Viewport.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SetViewportDefaults fills in unset viewport fields.
func (o *Options) SetViewportDefaults() {
	if o.Viewport.Width == 0 {
		o.Viewport.Width = DefaultWidth
	}
	if o.Viewport.Height == 0 {
		o.Viewport.Height = DefaultHeight
	}
	if o.Viewport.VisibleFraction == 0 {
		o.Viewport.VisibleFraction = DefaultVisibleFraction
	}
	if o.Viewport.ScaleExtent == [2]float64{} {
		o.Viewport.ScaleExtent = DefaultScaleExtent
	}
}

// BuildOptions returns the starmap build options for these pipeline options.
func (o *Options) BuildOptions() starmap.Options {
	return starmap.Options{
		LinkThreshold:   o.LinkThreshold,
		Projection:      o.Projection,
		LongRangeChance: o.LongRangeChance,
		Seed:            o.Seed,
	}
}

// GraphKeyOpts returns cache key options for graph building.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		LinkThreshold:   o.LinkThreshold,
		LongRangeChance: o.LongRangeChance,
		Seed:            o.Seed,
		ProjScale:       o.Projection.Scale,
		ProjOffsetX:     o.Projection.OffsetX,
		ProjOffsetY:     o.Projection.OffsetY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:           format,
		Detailed:         o.Detailed,
		ShowUndiscovered: o.ShowUndiscovered,
	}
}
