package entry

import (
	"fmt"

	"github.com/felixgeelhaar/cascal/adapter/cli"
	"github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm <entry-id>",
	Short:   "Remove an entry",
	Long:    `Remove an entry from the calendar. Neighbors are not rescheduled.`,
	Aliases: []string{"remove", "delete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		out := cmd.OutOrStdout()
		if app == nil || app.DeleteEntryHandler == nil {
			fmt.Fprintln(out, "Entry commands require a database connection.")
			return nil
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		if err := app.DeleteEntryHandler.Handle(cmd.Context(), commands.DeleteEntryCommand{EntryID: entryID}); err != nil {
			return fmt.Errorf("failed to remove entry: %w", err)
		}

		fmt.Fprintf(out, "Entry removed: %s\n", entryID)
		return nil
	},
}
