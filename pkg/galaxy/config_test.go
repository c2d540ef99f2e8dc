package galaxy

import (
	"testing"

	"github.com/meridian/starchart/pkg/allocator"
	"github.com/meridian/starchart/pkg/errors"
)

func validConfig() GenerationConfig {
	c := GenerationConfig{Name: "Meridian Prime"}
	c.SetDefaults()
	return c
}

func TestSetDefaults(t *testing.T) {
	c := GenerationConfig{Name: "Test"}
	c.SetDefaults()

	if c.TotalSectors != DefaultTotalSectors {
		t.Errorf("TotalSectors = %d, want %d", c.TotalSectors, DefaultTotalSectors)
	}
	if len(c.Distribution) != 3 {
		t.Fatalf("Distribution = %v, want 3 stock shares", c.Distribution)
	}
	if c.WarpTunnels.MaxPerRegion == 0 {
		t.Error("WarpTunnels not defaulted")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaulted config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*GenerationConfig)
		wantCode errors.Code
	}{
		{
			name:   "Valid",
			mutate: func(c *GenerationConfig) {},
		},
		{
			name:     "EmptyName",
			mutate:   func(c *GenerationConfig) { c.Name = "" },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "NegativeSectors",
			mutate:   func(c *GenerationConfig) { c.TotalSectors = -5 },
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "PortDensityOver100",
			mutate:   func(c *GenerationConfig) { c.PortDensity = 120 },
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name: "DistributionOffTotal",
			mutate: func(c *GenerationConfig) {
				c.Distribution = []allocator.Share{{Label: RegionFederation, Value: 80}}
			},
			wantCode: errors.ErrCodeInvalidDistribution,
		},
		{
			name: "InvertedWarpTunnels",
			mutate: func(c *GenerationConfig) {
				c.WarpTunnels = WarpTunnelConfig{MinPerRegion: 8, MaxPerRegion: 2}
			},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name: "HazardRangeOutOfScale",
			mutate: func(c *GenerationConfig) {
				c.Hazards = map[string]HazardRange{RegionFrontier: {Min: 2, Max: 14}}
			},
			wantCode: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestCarve(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		shares []allocator.Share
		want   RegionCounts
	}{
		{
			name:  "StockSplit",
			total: 500,
			shares: []allocator.Share{
				{Label: RegionFederation, Value: 25},
				{Label: RegionBorder, Value: 35},
				{Label: RegionFrontier, Value: 40},
			},
			want: RegionCounts{Federation: 125, Border: 175, Frontier: 200},
		},
		{
			name:  "FrontierAbsorbsRemainder",
			total: 100,
			shares: []allocator.Share{
				{Label: RegionFederation, Value: 33.5},
				{Label: RegionBorder, Value: 33.5},
				{Label: RegionFrontier, Value: 33},
			},
			// 33.5% of 100 floors to 33 twice; frontier takes 34.
			want: RegionCounts{Federation: 33, Border: 33, Frontier: 34},
		},
		{
			name:  "TinyGalaxy",
			total: 3,
			shares: []allocator.Share{
				{Label: RegionFederation, Value: 25},
				{Label: RegionBorder, Value: 35},
				{Label: RegionFrontier, Value: 40},
			},
			want: RegionCounts{Federation: 0, Border: 1, Frontier: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := allocator.NewPercent(tt.shares)
			if err != nil {
				t.Fatalf("NewPercent() error = %v", err)
			}
			got, err := Carve(tt.total, g)
			if err != nil {
				t.Fatalf("Carve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Carve() = %+v, want %+v", got, tt.want)
			}
			if sum := got.Federation + got.Border + got.Frontier; sum != tt.total {
				t.Errorf("counts sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestCarveMissingRegion(t *testing.T) {
	g, err := allocator.NewPercent([]allocator.Share{
		{Label: "core", Value: 50},
		{Label: "rim", Value: 50},
	})
	if err != nil {
		t.Fatalf("NewPercent() error = %v", err)
	}
	if _, err := Carve(100, g); !errors.Is(err, errors.ErrCodeShareNotFound) {
		t.Errorf("Carve() error = %v, want SHARE_NOT_FOUND", err)
	}
}
