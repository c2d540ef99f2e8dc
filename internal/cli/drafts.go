package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/meridian/starchart/pkg/galaxy"
)

// draftsCommand creates the draft management command group.
func (c *CLI) draftsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved generation configs",
	}

	cmd.AddCommand(c.draftsListCommand())
	cmd.AddCommand(c.draftsCreateCommand())
	cmd.AddCommand(c.draftsShowCommand())
	cmd.AddCommand(c.draftsDeleteCommand())

	return cmd
}

// draftsListCommand creates the "drafts list" subcommand.
func (c *CLI) draftsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newDraftStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			list, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No drafts saved")
				printNextStep("Create one", "starchart drafts create --name nightly --sectors 500")
				return nil
			}

			fmt.Println(renderDraftTable(list, -1))
			return nil
		},
	}
}

// draftsCreateCommand creates the "drafts create" subcommand.
func (c *CLI) draftsCreateCommand() *cobra.Command {
	var (
		name          string
		sectors       int
		portDensity   float64
		planetDensity float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a new generation config draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newDraftStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			draft, err := store.Create(ctx, name, galaxy.GenerationConfig{
				Name:          name,
				TotalSectors:  sectors,
				PortDensity:   portDensity,
				PlanetDensity: planetDensity,
			})
			if err != nil {
				return err
			}

			printSuccess("Saved draft %q", draft.Name)
			printKeyValue("id", draft.ID.String())
			printNextStep("Generate from it", fmt.Sprintf("starchart generate --draft %s", draft.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "draft name (required)")
	cmd.Flags().IntVar(&sectors, "sectors", 0, "total sector count")
	cmd.Flags().Float64Var(&portDensity, "port-density", 0, "percentage of sectors with ports")
	cmd.Flags().Float64Var(&planetDensity, "planet-density", 0, "percentage of sectors with planets")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// draftsShowCommand creates the "drafts show" subcommand.
func (c *CLI) draftsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a draft's full config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid draft id %q: %w", args[0], err)
			}

			store, err := c.newDraftStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			draft, err := store.Get(ctx, id)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(draft.Name))
			printKeyValue("id", draft.ID.String())
			printKeyValue("sectors", fmt.Sprintf("%d", draft.Config.TotalSectors))
			printKeyValue("ports", fmt.Sprintf("%.0f%%", draft.Config.PortDensity))
			printKeyValue("planets", fmt.Sprintf("%.0f%%", draft.Config.PlanetDensity))
			printKeyValue("updated", draft.UpdatedAt.Format("Jan 2, 2006 15:04"))
			printNewline()
			printRegionBreakdown(draft.Config)
			return nil
		},
	}
}

// draftsDeleteCommand creates the "drafts delete" subcommand.
func (c *CLI) draftsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid draft id %q: %w", args[0], err)
			}

			store, err := c.newDraftStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if err := store.Delete(ctx, id); err != nil {
				return err
			}
			printSuccess("Deleted %s", id)
			return nil
		},
	}
}
