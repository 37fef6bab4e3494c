package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	planStart     string
	planEnd       string
	planExclude   string
	planPlanFlags planFlags
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the cascade an interval would trigger",
	Long: `Compute the moves a prospective interval would cause without changing
anything. Use --exclude when previewing a move of an existing entry.

Examples:
  cascal entry plan --start 2026-09-03 --end 2026-09-05
  cascal entry plan --start 2026-09-03 --exclude abc123 --policy balanced`,
	Aliases: []string{"preview"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.PreviewPlanHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		start, err := parseDate(planStart)
		if err != nil {
			return err
		}
		end := start
		if planEnd != "" {
			end, err = parseDate(planEnd)
			if err != nil {
				return err
			}
		}

		excludeID := uuid.Nil
		if planExclude != "" {
			excludeID, err = uuid.Parse(planExclude)
			if err != nil {
				return fmt.Errorf("invalid exclude ID: %w", err)
			}
		}

		plan, err := planPlanFlags.resolve(cmd, app.DefaultPlan)
		if err != nil {
			return err
		}

		moves, err := app.PreviewPlanHandler.Handle(cmd.Context(), queries.PreviewPlanQuery{
			Start:     start,
			End:       end,
			ExcludeID: excludeID,
			Plan:      plan,
		})
		if err != nil {
			return fmt.Errorf("failed to plan: %w", err)
		}

		if len(moves) == 0 {
			fmt.Fprintln(out, "No entries would move.")
			return nil
		}
		fmt.Fprintf(out, "%d entry(ies) would move:\n", len(moves))
		printMoves(out, moves)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planStart, "start", "", "interval start (YYYY-MM-DD, required)")
	planCmd.Flags().StringVar(&planEnd, "end", "", "interval end (YYYY-MM-DD, default: start)")
	planCmd.Flags().StringVar(&planExclude, "exclude", "", "entry ID to leave out of planning")
	planPlanFlags.register(planCmd)

	planCmd.MarkFlagRequired("start")
}
