// Package seeders fills an empty database with a usable starting state:
// a handful of showcase products and the admin account.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lspratas/atelier/pkg/logger"
)

// Seeder is one idempotent data loader. Run must be safe to call against
// a database that already holds its data.
type Seeder struct {
	Name string
	Run  func(ctx context.Context, db *mongo.Database) error
}

var registry []Seeder

func register(s Seeder) {
	registry = append(registry, s)
}

// RunAll executes every registered seeder in registration order.
func RunAll(ctx context.Context, db *mongo.Database) error {
	for _, s := range registry {
		logger.Info("seeding", "seeder", s.Name)
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name, err)
		}
	}
	return nil
}
