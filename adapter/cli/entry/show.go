package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show the details of one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.GetEntryHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		e, err := app.GetEntryHandler.Handle(cmd.Context(), queries.GetEntryQuery{EntryID: entryID})
		if err != nil {
			return fmt.Errorf("failed to fetch entry: %w", err)
		}

		fmt.Fprintf(out, "Entry %s\n", e.ID())
		fmt.Fprintf(out, "  Title:       %s\n", e.Title())
		if e.Description() != "" {
			fmt.Fprintf(out, "  Description: %s\n", e.Description())
		}
		fmt.Fprintf(out, "  Dates:       %s .. %s (%d day(s))\n",
			e.Start().Format(dateLayout), e.End().Format(dateLayout), e.Duration())
		if e.ReferenceID() != uuid.Nil {
			fmt.Fprintf(out, "  Reference:   %s\n", e.ReferenceID())
		}
		fmt.Fprintf(out, "  Locked:      %t\n", e.Locked())
		fmt.Fprintf(out, "  Fixed:       %t\n", e.Fixed())
		if e.Reminder() {
			fmt.Fprintf(out, "  Reminder:    %d day(s) before start\n", e.RemindDaysBefore())
		}
		return nil
	},
}
