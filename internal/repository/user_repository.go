package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-catalog/internal/models"
)

type UserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewUserRepository(collection *mongo.Collection, timeout time.Duration) *UserRepository {
	return &UserRepository{collection: collection, timeout: timeout}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, errors.Wrap(translate(err), "find user")
	}
	return &user, nil
}

// UpsertProfile actualiza la foto del usuario con ese email, o lo crea como subscriber con ese nombre.
func (r *UserRepository) UpsertProfile(ctx context.Context, email, name, picture string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"picture":   picture,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"name":      name,
			"role":      models.RoleSubscriber,
			"cart":      bson.A{},
			"wishlist":  bson.A{},
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&user)
	if err != nil {
		return nil, errors.Wrap(translate(err), "upsert user")
	}
	return &user, nil
}
