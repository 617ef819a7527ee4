package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/database"
)

// SaleRepository is the append-only façade over the `sales` collection.
// There are deliberately no update or delete operations: the ledger is
// immutable history.
type SaleRepository struct {
	col *mongo.Collection
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{col: database.Collection("sales")}
}

// NewSaleRepositoryWith binds the repository to an explicit collection.
func NewSaleRepositoryWith(col *mongo.Collection) *SaleRepository {
	return &SaleRepository{col: col}
}

// All returns the full ledger ordered by date descending (newest first).
func (r *SaleRepository) All(ctx context.Context) ([]models.Sale, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("sales: list: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Sale
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("sales: decode: %w", err)
	}
	return out, nil
}

// Append records one sale. The timestamp is assigned here, server-side, at
// the moment of the write.
func (r *SaleRepository) Append(ctx context.Context, s models.Sale) (primitive.ObjectID, error) {
	s.ID = primitive.NilObjectID
	s.Date = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("sales: append: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
