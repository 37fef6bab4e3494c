package cli

import (
	plannerCommands "github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	plannerQueries "github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	"github.com/felixgeelhaar/cascal/internal/planner/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	InsertEntryHandler *plannerCommands.InsertEntryHandler
	UpdateEntryHandler *plannerCommands.UpdateEntryHandler
	BlockShiftHandler  *plannerCommands.BlockShiftHandler
	DeleteEntryHandler *plannerCommands.DeleteEntryHandler

	// Query Handlers
	GetEntryHandler              *plannerQueries.GetEntryHandler
	ListEntriesHandler           *plannerQueries.ListEntriesHandler
	PreviewPlanHandler           *plannerQueries.PreviewPlanHandler
	PreviewBlockShiftHandler     *plannerQueries.PreviewBlockShiftHandler
	ListRescheduleRecordsHandler *plannerQueries.ListRescheduleRecordsHandler
	ListDueRemindersHandler      *plannerQueries.ListDueRemindersHandler

	// Planner defaults (from environment, overridable per command)
	DefaultPlan domain.PlanConfig
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
