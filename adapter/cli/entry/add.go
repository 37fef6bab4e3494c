package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	addTitle       string
	addDescription string
	addStart       string
	addEnd         string
	addReferenceID string
	addLocked      bool
	addFixed       bool
	addRemindDays  int
	addPlanFlags   planFlags
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a calendar entry",
	Long: `Add a new entry. Overlapping movable neighbors are pushed out of the
way in a cascade; the applied moves are printed.

Examples:
  cascal entry add --title "Kitchen install" --start 2026-09-01 --end 2026-09-05
  cascal entry add --title "Inspection" --start 2026-09-03 --locked
  cascal entry add --title "Delivery" --start 2026-09-10 --remind 2`,
	Aliases: []string{"new", "insert"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.InsertEntryHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		start, err := parseDate(addStart)
		if err != nil {
			return err
		}
		end := start
		if addEnd != "" {
			end, err = parseDate(addEnd)
			if err != nil {
				return err
			}
		}

		refID := uuid.Nil
		if addReferenceID != "" {
			refID, err = uuid.Parse(addReferenceID)
			if err != nil {
				return fmt.Errorf("invalid reference ID: %w", err)
			}
		}

		plan, err := addPlanFlags.resolve(cmd, app.DefaultPlan)
		if err != nil {
			return err
		}

		cmdData := commands.InsertEntryCommand{
			Title:            addTitle,
			Description:      addDescription,
			ReferenceID:      refID,
			Start:            start,
			End:              end,
			Locked:           addLocked,
			Fixed:            addFixed,
			Reminder:         addRemindDays > 0,
			RemindDaysBefore: addRemindDays,
			Plan:             plan,
		}

		result, err := app.InsertEntryHandler.Handle(cmd.Context(), cmdData)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}

		fmt.Fprintf(out, "Entry added: %s\n", result.EntryID)
		if len(result.Applied) > 0 {
			fmt.Fprintf(out, "Rescheduled %d neighbor(s):\n", len(result.Applied))
			printMoves(out, result.Applied)
		}
		if len(result.Applied) < len(result.Planned) {
			fmt.Fprintf(out, "Warning: %d planned move(s) failed, see the reschedule log.\n",
				len(result.Planned)-len(result.Applied))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "entry title (required)")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "entry description")
	addCmd.Flags().StringVar(&addStart, "start", "", "start date (YYYY-MM-DD, required)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end date (YYYY-MM-DD, default: start)")
	addCmd.Flags().StringVar(&addReferenceID, "ref", "", "reference to an external record")
	addCmd.Flags().BoolVar(&addLocked, "locked", false, "lock the entry in place")
	addCmd.Flags().BoolVar(&addFixed, "fixed", false, "mark the entry as a fixed appointment")
	addCmd.Flags().IntVar(&addRemindDays, "remind", 0, "remind this many days before the start")
	addPlanFlags.register(addCmd)

	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("start")
}
