package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/meridian/starchart/pkg/drafts"
	"github.com/meridian/starchart/pkg/galaxy"
)

// generateCommand creates the galaxy generation command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		name          string
		sectors       int
		portDensity   float64
		planetDensity float64
		draftID       string
		interactive   bool
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new galaxy on the universe service",
		Long: `Generate submits a generation config to the universe service and waits
for the new galaxy. The config comes from flags, from a saved draft
(--draft), or from an interactive draft picker (--interactive).

With --dry-run the config is only validated and the region breakdown
printed; nothing is sent to the service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.resolveGenerationConfig(ctx, name, sectors, portDensity, planetDensity, draftID, interactive)
			if err != nil {
				return err
			}
			cfg.SetDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}

			printRegionBreakdown(*cfg)
			if dryRun {
				printInfo("Dry run, nothing sent")
				return nil
			}

			client, err := c.newUniverseClient()
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %q (%d sectors)...", cfg.Name, cfg.TotalSectors))
			spinner.Start()

			prog := newProgress(logger)
			result, err := client.Generate(ctx, *cfg)
			if err != nil {
				spinner.StopWithError("Generation failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Generated %d sectors", result.SectorCount))

			printSuccess("Galaxy %q is live", result.Name)
			printKeyValue("galaxy", result.GalaxyID.String())
			printKeyValue("sectors", fmt.Sprintf("%d", result.SectorCount))
			printKeyValue("tunnels", fmt.Sprintf("%d", result.WarpTunnels))
			printNewline()
			printNextStep("Build the map", fmt.Sprintf("starchart map build %s", result.GalaxyID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "galaxy name")
	cmd.Flags().IntVar(&sectors, "sectors", 0, "total sector count")
	cmd.Flags().Float64Var(&portDensity, "port-density", 0, "percentage of sectors with ports")
	cmd.Flags().Float64Var(&planetDensity, "planet-density", 0, "percentage of sectors with planets")
	cmd.Flags().StringVar(&draftID, "draft", "", "generate from a saved draft")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a draft interactively")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print the region breakdown only")

	return cmd
}

// resolveGenerationConfig assembles the config from a draft, the picker, or
// flags, in that priority order.
func (c *CLI) resolveGenerationConfig(ctx context.Context, name string, sectors int, portDensity, planetDensity float64, draftID string, interactive bool) (*galaxy.GenerationConfig, error) {
	if draftID != "" || interactive {
		store, err := c.newDraftStore(ctx)
		if err != nil {
			return nil, err
		}
		defer store.Close(ctx)

		draft, err := c.pickDraft(ctx, store, draftID)
		if err != nil {
			return nil, err
		}
		cfg := draft.Config
		if cfg.Name == "" {
			cfg.Name = draft.Name
		}
		return &cfg, nil
	}

	return &galaxy.GenerationConfig{
		Name:          name,
		TotalSectors:  sectors,
		PortDensity:   portDensity,
		PlanetDensity: planetDensity,
	}, nil
}

// pickDraft loads a draft by ID, or runs the interactive picker when no ID
// is given.
func (c *CLI) pickDraft(ctx context.Context, store drafts.Store, draftID string) (*drafts.Draft, error) {
	if draftID != "" {
		id, err := uuid.Parse(draftID)
		if err != nil {
			return nil, fmt.Errorf("invalid draft id %q: %w", draftID, err)
		}
		return store.Get(ctx, id)
	}
	return runDraftPicker(ctx, store)
}

// printRegionBreakdown shows how the distribution carves the sector total.
func printRegionBreakdown(cfg galaxy.GenerationConfig) {
	group, err := cfg.Group()
	if err != nil {
		return
	}
	counts, err := galaxy.Carve(cfg.TotalSectors, group)
	if err != nil {
		return
	}

	printInfo("Region breakdown for %d sectors", cfg.TotalSectors)
	printDetail("federation  %d", counts.Federation)
	printDetail("border      %d", counts.Border)
	printDetail("frontier    %d", counts.Frontier)
}
