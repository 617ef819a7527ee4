package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lspratas/atelier/config"
	"github.com/lspratas/atelier/pkg/auth"
	"github.com/lspratas/atelier/pkg/logger"
)

func init() {
	register(Seeder{Name: "admin-user", Run: seedAdminUser})
}

// seedAdminUser guarantees one admin account exists. Email and password
// come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; change the password
// after the first login.
func seedAdminUser(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("users")

	email := config.Get("SEED_ADMIN_EMAIL", "admin@lspratas.com.br")

	count, err := col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("admin user already present, skipping", "email", email)
		return nil
	}

	hash, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "trocar-na-primeira-entrada"))
	if err != nil {
		return err
	}

	_, err = col.InsertOne(ctx, bson.M{
		"name":      "Lali",
		"email":     email,
		"password":  hash,
		"createdAt": time.Now().UTC(),
	})
	return err
}
