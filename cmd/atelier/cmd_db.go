package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lspratas/atelier/config"
	"github.com/lspratas/atelier/database/seeders"
	"github.com/lspratas/atelier/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// atelier seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the starter catalog and admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}

// atelier db:ping
var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		if err := database.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s: %w", config.MongoURI(), err)
		}
		fmt.Println("✅  Database reachable.")
		return nil
	},
}
