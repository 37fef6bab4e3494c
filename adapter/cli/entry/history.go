package entry

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	historyFrom string
	historyTo   string
	historyDays int
)

var historyCmd = &cobra.Command{
	Use:   "history [entry-id]",
	Short: "Show the reschedule log",
	Long: `Show the audit log of cascade moves, either for one entry or for a
recording window.

Examples:
  cascal entry history abc123
  cascal entry history --days 7
  cascal entry history --from 2026-09-01 --to 2026-09-30`,
	Aliases: []string{"log"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.ListRescheduleRecordsHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		q := queries.ListRescheduleRecordsQuery{}
		if len(args) == 1 {
			entryID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry ID: %w", err)
			}
			q.EntryID = entryID
		} else {
			to := time.Now()
			from := to.AddDate(0, 0, -historyDays)
			if historyFrom != "" {
				var err error
				from, err = parseDate(historyFrom)
				if err != nil {
					return err
				}
			}
			if historyTo != "" {
				var err error
				to, err = parseDate(historyTo)
				if err != nil {
					return err
				}
				// include the whole end day
				to = to.AddDate(0, 0, 1)
			}
			q.From = from
			q.To = to
		}

		records, err := app.ListRescheduleRecordsHandler.Handle(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("failed to list reschedule log: %w", err)
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No reschedules recorded.")
			return nil
		}
		for _, r := range records {
			status := "ok"
			if !r.Success {
				status = "FAILED: " + r.FailureReason
			}
			fmt.Fprintf(out, "  %s  %s  %s..%s -> %s..%s  (%s by %s)  %s\n",
				r.RecordedAt.Format("2006-01-02 15:04"),
				r.EntryID,
				r.OldStart.Format(dateLayout), r.OldEnd.Format(dateLayout),
				r.NewStart.Format(dateLayout), r.NewEnd.Format(dateLayout),
				r.Trigger, r.TriggerID, status,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "window start (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "window end (YYYY-MM-DD)")
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "window length in days when --from is not set")
}
