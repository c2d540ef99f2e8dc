// Package galaxy defines the generation configuration the admin console
// submits to the universe service, and the region math derived from it.
package galaxy

import (
	"github.com/meridian/starchart/pkg/allocator"
	"github.com/meridian/starchart/pkg/errors"
)

// Region labels used in the distribution group. The universe service keys
// its region carve on exactly these three.
const (
	RegionFederation = "federation"
	RegionBorder     = "border"
	RegionFrontier   = "frontier"
)

// Default generation values, matching the universe service's own defaults.
const (
	DefaultTotalSectors  = 500
	DefaultPortDensity   = 15 // percent of sectors with a port
	DefaultPlanetDensity = 25 // percent of sectors with a planet
)

// WarpTunnelConfig bounds the warp tunnels generated per region.
type WarpTunnelConfig struct {
	MinPerRegion int     `json:"min_per_region" toml:"min_per_region" bson:"min_per_region"`
	MaxPerRegion int     `json:"max_per_region" toml:"max_per_region" bson:"max_per_region"`
	StabilityMin float64 `json:"stability_min" toml:"stability_min" bson:"stability_min"`
	StabilityMax float64 `json:"stability_max" toml:"stability_max" bson:"stability_max"`
}

// HazardRange bounds hazard levels rolled for a region's sectors.
type HazardRange struct {
	Min int `json:"min" toml:"min" bson:"min"`
	Max int `json:"max" toml:"max" bson:"max"`
}

// GenerationConfig is a full galaxy generation request. The distribution is
// stored as plain shares so the config round-trips through JSON, TOML, and
// BSON; Validate rebuilds the allocator group to enforce the sum constraint.
type GenerationConfig struct {
	Name          string            `json:"name" toml:"name" bson:"name"`
	TotalSectors  int               `json:"total_sectors" toml:"total_sectors" bson:"total_sectors"`
	Distribution  []allocator.Share `json:"region_distribution" toml:"region_distribution" bson:"region_distribution"`
	PortDensity   float64           `json:"port_density" toml:"port_density" bson:"port_density"`
	PlanetDensity float64           `json:"planet_density" toml:"planet_density" bson:"planet_density"`
	WarpTunnels   WarpTunnelConfig  `json:"warp_tunnel_config" toml:"warp_tunnel_config" bson:"warp_tunnel_config"`

	// Hazards maps region label → hazard range.
	Hazards map[string]HazardRange `json:"hazard_levels,omitempty" toml:"hazard_levels,omitempty" bson:"hazard_levels,omitempty"`
}

// DefaultDistribution returns the stock region split.
func DefaultDistribution() []allocator.Share {
	return []allocator.Share{
		{Label: RegionFederation, Value: 25},
		{Label: RegionBorder, Value: 35},
		{Label: RegionFrontier, Value: 40},
	}
}

// SetDefaults fills zero-valued fields with stock values.
func (c *GenerationConfig) SetDefaults() {
	if c.TotalSectors == 0 {
		c.TotalSectors = DefaultTotalSectors
	}
	if len(c.Distribution) == 0 {
		c.Distribution = DefaultDistribution()
	}
	if c.PortDensity == 0 {
		c.PortDensity = DefaultPortDensity
	}
	if c.PlanetDensity == 0 {
		c.PlanetDensity = DefaultPlanetDensity
	}
	if c.WarpTunnels == (WarpTunnelConfig{}) {
		c.WarpTunnels = WarpTunnelConfig{MinPerRegion: 3, MaxPerRegion: 6, StabilityMin: 0.7, StabilityMax: 1.0}
	}
}

// Validate checks the configuration. It does not mutate the config; call
// SetDefaults first when accepting partial input.
func (c *GenerationConfig) Validate() error {
	if err := errors.ValidateName(c.Name); err != nil {
		return err
	}
	if c.TotalSectors <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "total_sectors must be positive, got %d", c.TotalSectors)
	}
	if c.PortDensity < 0 || c.PortDensity > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "port_density %g outside [0, 100]", c.PortDensity)
	}
	if c.PlanetDensity < 0 || c.PlanetDensity > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "planet_density %g outside [0, 100]", c.PlanetDensity)
	}
	if c.WarpTunnels.MinPerRegion > c.WarpTunnels.MaxPerRegion {
		return errors.New(errors.ErrCodeInvalidConfig, "warp tunnel min %d exceeds max %d",
			c.WarpTunnels.MinPerRegion, c.WarpTunnels.MaxPerRegion)
	}
	for label, h := range c.Hazards {
		if h.Min > h.Max || h.Min < 0 || h.Max > 10 {
			return errors.New(errors.ErrCodeInvalidConfig, "hazard range [%d, %d] for %q outside 0-10", h.Min, h.Max, label)
		}
	}
	_, err := c.Group()
	return err
}

// Group builds the allocator group from the stored distribution shares.
func (c *GenerationConfig) Group() (*allocator.Group, error) {
	return allocator.NewPercent(c.Distribution)
}

// RegionCounts is the integer sector carve per region.
type RegionCounts struct {
	Federation int `json:"federation"`
	Border     int `json:"border"`
	Frontier   int `json:"frontier"`
}

// Carve converts percentage shares into whole sector counts the way the
// universe service does: federation and border floor their slices and
// frontier absorbs the remainder, so the counts always sum to total.
func Carve(total int, g *allocator.Group) (RegionCounts, error) {
	if total <= 0 {
		return RegionCounts{}, errors.New(errors.ErrCodeInvalidConfig, "total must be positive, got %d", total)
	}
	fed, ok := g.Value(RegionFederation)
	if !ok {
		return RegionCounts{}, errors.New(errors.ErrCodeShareNotFound, "no share named %q", RegionFederation)
	}
	border, ok := g.Value(RegionBorder)
	if !ok {
		return RegionCounts{}, errors.New(errors.ErrCodeShareNotFound, "no share named %q", RegionBorder)
	}
	if _, ok := g.Value(RegionFrontier); !ok {
		return RegionCounts{}, errors.New(errors.ErrCodeShareNotFound, "no share named %q", RegionFrontier)
	}

	counts := RegionCounts{
		Federation: int(float64(total) * fed / 100),
		Border:     int(float64(total) * border / 100),
	}
	counts.Frontier = total - counts.Federation - counts.Border
	return counts, nil
}
