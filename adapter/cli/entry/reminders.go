package entry

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var remindersDate string

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List entries whose reminder is due",
	Long: `List entries whose reminder fires on a given day, i.e. the entry
starts exactly its configured number of days later.

Examples:
  cascal entry reminders
  cascal entry reminders --date 2026-09-08`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.ListDueRemindersHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		today := time.Now()
		if remindersDate != "" {
			var err error
			today, err = parseDate(remindersDate)
			if err != nil {
				return err
			}
		}

		entries, err := app.ListDueRemindersHandler.Handle(cmd.Context(), queries.ListDueRemindersQuery{Today: today})
		if err != nil {
			return fmt.Errorf("failed to list reminders: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No reminders due.")
			return nil
		}
		for _, e := range entries {
			printEntry(out, e)
		}
		return nil
	},
}

func init() {
	remindersCmd.Flags().StringVar(&remindersDate, "date", "", "day to evaluate (YYYY-MM-DD, default: today)")
}
