package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/phono/internal/server"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserAdd creates a user account with a bcrypt-hashed password.
func (r *Runner) UserAdd(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	auth := server.NewAuthService(newCatalogStores(db).users)

	user, err := auth.Register(cmd.String("username"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.writePlain("Created user '%s' (id %d)\n", user.Username, user.ID)
	return nil
}
