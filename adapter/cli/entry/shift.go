package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	shiftStart  string
	shiftEnd    string
	shiftDryRun bool
)

var shiftCmd = &cobra.Command{
	Use:   "shift <entry-id>",
	Short: "Shift an entry and drag all later entries along",
	Long: `Move an entry and shift every movable entry starting on or after its
original start date by the same number of days. The whole block moves as a
unit inside one transaction; locked and fixed entries stay put.

Examples:
  cascal entry shift abc123 --end 2026-09-12
  cascal entry shift abc123 --start 2026-09-02 --end 2026-09-08 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.BlockShiftHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		var patch commands.EntryPatch
		if cmd.Flags().Changed("start") {
			start, err := parseDate(shiftStart)
			if err != nil {
				return err
			}
			patch.Start = &start
		}
		if cmd.Flags().Changed("end") {
			end, err := parseDate(shiftEnd)
			if err != nil {
				return err
			}
			patch.End = &end
		}

		if shiftDryRun {
			preview, err := app.PreviewBlockShiftHandler.Handle(cmd.Context(), queries.PreviewBlockShiftQuery{
				EntryID:  entryID,
				NewStart: patch.Start,
				NewEnd:   patch.End,
			})
			if err != nil {
				return fmt.Errorf("failed to preview shift: %w", err)
			}
			fmt.Fprintf(out, "Shift distance: %+d day(s)\n", preview.BetaDays)
			if !preview.HasFollowers {
				fmt.Fprintln(out, "No followers would move.")
				return nil
			}
			fmt.Fprintf(out, "%d follower(s) would move, starts %s through %s.\n",
				preview.Count,
				preview.FirstStart.Format(dateLayout),
				preview.LastStart.Format(dateLayout),
			)
			return nil
		}

		result, err := app.BlockShiftHandler.Handle(cmd.Context(), commands.BlockShiftCommand{
			EntryID: entryID,
			Patch:   patch,
		})
		if err != nil {
			return fmt.Errorf("failed to shift entries: %w", err)
		}

		fmt.Fprintf(out, "Shifted by %+d day(s).\n", result.BetaDays)
		if len(result.Applied) > 0 {
			fmt.Fprintf(out, "Moved %d follower(s):\n", len(result.Applied))
			printMoves(out, result.Applied)
		}
		return nil
	},
}

func init() {
	shiftCmd.Flags().StringVar(&shiftStart, "start", "", "new start date (YYYY-MM-DD)")
	shiftCmd.Flags().StringVar(&shiftEnd, "end", "", "new end date (YYYY-MM-DD)")
	shiftCmd.Flags().BoolVar(&shiftDryRun, "dry-run", false, "preview the shift without applying it")
}
