package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/models"
)

// SlugStore es el acceso a una colección cuyos documentos se identifican por slug.
type SlugStore[T any] interface {
	Insert(ctx context.Context, doc *T) error
	FindBySlug(ctx context.Context, slug string, activeOnly bool) (*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	ListActive(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) error
	SetStatus(ctx context.Context, slug string, status models.Status) (*T, error)
}

type BookStore interface {
	SlugStore[models.Book]
	ListRecent(ctx context.Context, limit int64) ([]models.Book, error)
	FindActiveDetail(ctx context.Context, slug string) (*models.BookDetail, error)
	Page(ctx context.Context, sortField string, order int, skip, limit int64) ([]models.BookDetail, error)
	CountActive(ctx context.Context) (int64, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertProfile(ctx context.Context, email, name, picture string) (*models.User, error)
}
