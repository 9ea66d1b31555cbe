package cli

import (
	"context"
)

// App represents the main CLI application
type App struct {
	root *RootCommand
}

// NewApp creates a new CLI application instance
func NewApp() *App {
	return &App{
		root: NewRootCommand(),
	}
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	a.root.cmd.SetArgs(args)
	return a.root.cmd.ExecuteContext(ctx)
}
