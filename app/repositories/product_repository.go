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

// ProductRepository is the typed façade over the `products` collection.
// Loose documents cross this boundary exactly once, decoding into
// models.Product; everything above works with closed records.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("products")}
}

// NewProductRepositoryWith binds the repository to an explicit collection
// (integration tests use this to point at a scratch database).
func NewProductRepositoryWith(col *mongo.Collection) *ProductRepository {
	return &ProductRepository{col: col}
}

// All returns every product ordered ascending by the given field.
func (r *ProductRepository) All(ctx context.Context, orderBy string) ([]models.Product, error) {
	opts := options.Find()
	if orderBy != "" {
		opts.SetSort(bson.D{{Key: orderBy, Value: 1}})
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return out, nil
}

// Showcased returns the publicly visible subset (inShowcase = true) in
// store order.
func (r *ProductRepository) Showcased(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"inShowcase": true})
	if err != nil {
		return nil, fmt.Errorf("products: showcased: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return out, nil
}

// FindByID returns one product or ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("products: find %s: %w", id.Hex(), err)
	}
	return p, nil
}

// Create inserts a new product and returns its store-assigned id.
// CreatedAt is stamped here, once.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (primitive.ObjectID, error) {
	p.ID = primitive.NilObjectID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("products: create: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Update applies a partial field merge ($set) to one product.
// Fields not present in `fields` are left untouched; `_id` and `createdAt`
// are never writable through this path.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	delete(fields, "_id")
	delete(fields, "createdAt")

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("products: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one product. Deletion is immediate and irreversible;
// sales referencing the product keep their snapshot fields.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
