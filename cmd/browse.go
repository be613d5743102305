package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/desertthunder/phono/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal catalog browser.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	stores := newCatalogStores(db)

	user, err := stores.users.GetByUsername(cmd.String("user"))
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/phono-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(stores, user.ID)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
