package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/database"
	"github.com/lspratas/atelier/pkg/queue"
	"github.com/lspratas/atelier/pkg/storage"

	// Job types register themselves for deserialization.
	_ "github.com/lspratas/atelier/app/jobs"
)

// atelier queue:work — run a standalone worker process. The server also
// runs workers in-process, so this is for scaling out or draining a backlog.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Process background jobs until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		if err := cache.Connect(ctx); err == nil && cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		storage.Connect()
		queue.UseMongo(database.DB())

		queue.StartWorkers(ctx, 4)
		fmt.Println("Workers running. Ctrl+C to stop.")
		<-ctx.Done()
		return nil
	},
}
