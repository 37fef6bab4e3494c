package entry

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var (
	listFrom string
	listTo   string
	listDays int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries in a date range",
	Long: `List entries that overlap a date range, ordered by start date.

Examples:
  cascal entry list
  cascal entry list --from 2026-09-01 --to 2026-09-30
  cascal entry list --days 7`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.ListEntriesHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		from := time.Now()
		if listFrom != "" {
			var err error
			from, err = parseDate(listFrom)
			if err != nil {
				return err
			}
		}
		to := from.AddDate(0, 0, listDays)
		if listTo != "" {
			var err error
			to, err = parseDate(listTo)
			if err != nil {
				return err
			}
		}

		entries, err := app.ListEntriesHandler.Handle(cmd.Context(), queries.ListEntriesQuery{From: from, To: to})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No entries in range.")
			return nil
		}
		for _, e := range entries {
			printEntry(out, e)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "range start (YYYY-MM-DD, default: today)")
	listCmd.Flags().StringVar(&listTo, "to", "", "range end (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listDays, "days", 30, "range length in days when --to is not set")
}
