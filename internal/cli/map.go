package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/meridian/starchart/pkg/pipeline"
	"github.com/meridian/starchart/pkg/starmap"
)

// mapCommand creates the map command group.
func (c *CLI) mapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Build and render the galaxy map",
	}

	cmd.AddCommand(c.mapBuildCommand())

	return cmd
}

// mapBuildCommand creates the "map build" subcommand.
func (c *CLI) mapBuildCommand() *cobra.Command {
	var (
		formats          string
		outDir           string
		threshold        float64
		longRange        float64
		seed             uint64
		detailed         bool
		showUndiscovered bool
		refresh          bool
		noCache          bool
	)

	cmd := &cobra.Command{
		Use:   "build <galaxy-id>",
		Short: "Build the star map for a galaxy and write artifacts",
		Long: `Build fetches the galaxy's sectors from the universe service, connects
them into a star map, fits the initial viewport, and writes the requested
artifacts next to each other in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			galaxyID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid galaxy id %q: %w", args[0], err)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				GalaxyID:         galaxyID,
				Refresh:          refresh,
				LinkThreshold:    firstNonZero(threshold, c.Config.Map.LinkThreshold),
				LongRangeChance:  firstNonZero(longRange, c.Config.Map.LongRangeChance),
				Seed:             seed,
				Viewport:         c.configViewport(),
				Formats:          parseFormats(formats),
				Detailed:         detailed,
				ShowUndiscovered: showUndiscovered,
				Logger:           c.Logger,
			}
			if opts.Seed == 0 {
				opts.Seed = c.Config.Map.Seed
			}

			spinner := newSpinnerWithContext(ctx, "Building star map...")
			spinner.Start()

			result, err := runner.Execute(ctx, opts)
			if err != nil {
				spinner.StopWithError("Build failed")
				return err
			}
			spinner.Stop()

			printSuccess("Star map for %s", galaxyID)
			printStats(result.Stats.SectorCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
			printDetail("fit: scale %.3f, translate (%.1f, %.1f)",
				result.Transform.Scale, result.Transform.TranslateX, result.Transform.TranslateY)

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			for format, data := range result.Artifacts {
				path := filepath.Join(outDir, fmt.Sprintf("starmap-%s.%s", shortID(galaxyID), format))
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("write %s artifact: %w", format, err)
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma-separated output formats: svg, dot, json (default json)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "proximity link distance threshold")
	cmd.Flags().Float64Var(&longRange, "long-range", 0, "long-range connector probability for warp-gate pairs")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for long-range connectors")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include hazard and faction in node labels")
	cmd.Flags().BoolVar(&showUndiscovered, "show-undiscovered", false, "include sectors no player has visited")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass caches and refetch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// configViewport converts the config's viewport section into fit parameters,
// leaving zeros for the pipeline defaults to fill.
func (c *CLI) configViewport() starmap.Viewport {
	vc := c.Config.Viewport
	return starmap.Viewport{
		Width:           vc.Width,
		Height:          vc.Height,
		VisibleFraction: vc.VisibleFraction,
		ScaleExtent:     [2]float64{vc.MinScale, vc.MaxScale},
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
