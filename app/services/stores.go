package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
)

// ProductStore is what the services need from the products collection.
// Satisfied by repositories.ProductRepository; tests substitute in-memory
// fakes.
type ProductStore interface {
	All(ctx context.Context, orderBy string) ([]models.Product, error)
	Showcased(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, p models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SaleStore is the append-only ledger surface.
type SaleStore interface {
	All(ctx context.Context) ([]models.Sale, error)
	Append(ctx context.Context, s models.Sale) (primitive.ObjectID, error)
}

// UserStore resolves admin accounts for the auth gate.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
