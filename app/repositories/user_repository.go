package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/database"
)

// UserRepository handles the admin accounts in the `users` collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection("users")}
}

// NewUserRepositoryWith binds the repository to an explicit collection.
func NewUserRepositoryWith(col *mongo.Collection) *UserRepository {
	return &UserRepository{col: col}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return user, ErrNotFound
	}
	if err != nil {
		return user, fmt.Errorf("users: find by email: %w", err)
	}
	return user, nil
}

// Create persists a new admin account.
func (r *UserRepository) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	user.ID = primitive.NilObjectID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("users: create: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
