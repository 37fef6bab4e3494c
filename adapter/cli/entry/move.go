package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	moveStart      string
	moveEnd        string
	moveTitle      string
	moveDesc       string
	moveLocked     bool
	moveFixed      bool
	moveRemindDays int
	movePlanFlags  planFlags
)

var moveCmd = &cobra.Command{
	Use:   "move <entry-id>",
	Short: "Move or edit an entry, cascading its neighbors",
	Long: `Update an entry's dates or fields. When the dates change, overlapping
movable neighbors are pushed out of the way in a cascade.

A start-only move collapses the entry to a single day; pass --end to keep
it longer. Locked or fixed entries are updated in place without touching
neighbors.

Examples:
  cascal entry move abc123 --start 2026-09-04 --end 2026-09-06
  cascal entry move abc123 --title "Kitchen install (phase 2)"
  cascal entry move abc123 --locked`,
	Aliases: []string{"mv", "edit"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.UpdateEntryHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}

		plan, err := movePlanFlags.resolve(cmd, app.DefaultPlan)
		if err != nil {
			return err
		}

		result, err := app.UpdateEntryHandler.Handle(cmd.Context(), commands.UpdateEntryCommand{
			EntryID: entryID,
			Patch:   patch,
			Plan:    plan,
		})
		if err != nil {
			return fmt.Errorf("failed to move entry: %w", err)
		}

		fmt.Fprintf(out, "Entry updated: %s\n", entryID)
		if !result.Rescheduled {
			fmt.Fprintln(out, "Entry is pinned; neighbors were left untouched.")
			return nil
		}
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

// patchFromFlags builds the partial update from whichever flags were set.
func patchFromFlags(cmd *cobra.Command) (commands.EntryPatch, error) {
	var patch commands.EntryPatch

	if cmd.Flags().Changed("start") {
		start, err := parseDate(moveStart)
		if err != nil {
			return patch, err
		}
		patch.Start = &start
	}
	if cmd.Flags().Changed("end") {
		end, err := parseDate(moveEnd)
		if err != nil {
			return patch, err
		}
		patch.End = &end
	}
	if cmd.Flags().Changed("title") {
		patch.Title = &moveTitle
	}
	if cmd.Flags().Changed("desc") {
		patch.Description = &moveDesc
	}
	if cmd.Flags().Changed("locked") {
		patch.Locked = &moveLocked
	}
	if cmd.Flags().Changed("fixed") {
		patch.Fixed = &moveFixed
	}
	if cmd.Flags().Changed("remind") {
		reminder := moveRemindDays > 0
		patch.Reminder = &reminder
		patch.RemindDaysBefore = &moveRemindDays
	}
	return patch, nil
}

func init() {
	moveCmd.Flags().StringVar(&moveStart, "start", "", "new start date (YYYY-MM-DD)")
	moveCmd.Flags().StringVar(&moveEnd, "end", "", "new end date (YYYY-MM-DD)")
	moveCmd.Flags().StringVarP(&moveTitle, "title", "t", "", "new title")
	moveCmd.Flags().StringVar(&moveDesc, "desc", "", "new description")
	moveCmd.Flags().BoolVar(&moveLocked, "locked", false, "lock or unlock the entry")
	moveCmd.Flags().BoolVar(&moveFixed, "fixed", false, "mark or unmark as fixed appointment")
	moveCmd.Flags().IntVar(&moveRemindDays, "remind", 0, "remind this many days before the start, 0 disables")
	movePlanFlags.register(moveCmd)
}
