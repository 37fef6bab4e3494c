// Package entry implements the calendar entry command group.
package entry

import (
	"fmt"
	"io"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// Cmd is the entry command group
var Cmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage calendar entries",
	Long:  `Create, move, shift and inspect calendar entries and their cascades.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(moveCmd)
	Cmd.AddCommand(shiftCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(planCmd)
	Cmd.AddCommand(historyCmd)
	Cmd.AddCommand(remindersCmd)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// planFlags are the per-command overrides of the planner defaults.
type planFlags struct {
	policy     string
	maxCascade int
	sticky     bool
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.policy, "policy", "", "cascade policy: forward or balanced")
	cmd.Flags().IntVar(&f.maxCascade, "max-cascade", -1, "maximum cascade steps, 0 for unlimited")
	cmd.Flags().BoolVar(&f.sticky, "sticky", true, "freeze cascade direction after the first move")
}

func (f *planFlags) resolve(cmd *cobra.Command, base domain.PlanConfig) (domain.PlanConfig, error) {
	plan := base
	if cmd.Flags().Changed("policy") {
		switch domain.Policy(f.policy) {
		case domain.PolicyForward, domain.PolicyBalanced:
			plan.Policy = domain.Policy(f.policy)
		default:
			return plan, fmt.Errorf("invalid policy %q (valid: forward, balanced)", f.policy)
		}
	}
	if cmd.Flags().Changed("max-cascade") {
		if f.maxCascade < 0 {
			return plan, fmt.Errorf("max-cascade must be >= 0")
		}
		plan.MaxCascade = f.maxCascade
	}
	if cmd.Flags().Changed("sticky") {
		plan.StickyDirection = f.sticky
	}
	return plan, nil
}

func printMoves(out io.Writer, moves []domain.Move) {
	for _, m := range moves {
		fmt.Fprintf(out, "  %s  %s..%s -> %s..%s\n",
			m.EntryID,
			m.OldStart.Format(dateLayout), m.OldEnd.Format(dateLayout),
			m.NewStart.Format(dateLayout), m.NewEnd.Format(dateLayout),
		)
	}
}

func printEntry(out io.Writer, e *domain.Entry) {
	flags := ""
	if e.Locked() {
		flags += " [locked]"
	}
	if e.Fixed() {
		flags += " [fixed]"
	}
	if e.Reminder() {
		flags += fmt.Sprintf(" [remind -%dd]", e.RemindDaysBefore())
	}
	fmt.Fprintf(out, "  %s  %s..%s  %s%s\n",
		e.ID(),
		e.Start().Format(dateLayout), e.End().Format(dateLayout),
		e.Title(), flags,
	)
}
