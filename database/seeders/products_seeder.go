package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/logger"
)

func init() {
	register(Seeder{Name: "products", Run: seedProducts})
}

// seedProducts loads a starter catalog. Skipped entirely when any product
// already exists, so reseeding never duplicates or resets stock.
func seedProducts(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("products")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("products already present, skipping", "count", count)
		return nil
	}

	now := time.Now().UTC()
	starter := []models.Product{
		{Name: "Anel de Prata 925", Price: "R$ 89,90", Stock: 5, InShowcase: true, CreatedAt: now},
		{Name: "Brinco Argola Prata", Price: "R$ 59,90", Stock: 8, InShowcase: true, CreatedAt: now},
		{Name: "Colar Ponto de Luz", Price: "R$ 119,90", Stock: 3, InShowcase: true, CreatedAt: now},
		{Name: "Pulseira Veneziana", Price: "R$ 75,00", Stock: 2, InShowcase: false, CreatedAt: now},
		{Name: "Tornozeleira Prata", Price: "R$ 49,90", Stock: 0, InShowcase: false, CreatedAt: now},
	}

	docs := make([]interface{}, len(starter))
	for i, p := range starter {
		docs[i] = p
	}

	_, err = col.InsertMany(ctx, docs)
	return err
}
