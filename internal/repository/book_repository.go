package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-catalog/internal/database"
	"bookstore-catalog/internal/models"
)

type BookRepository struct {
	*SlugRepository[models.Book]
}

func NewBookRepository(collection *mongo.Collection, timeout time.Duration) *BookRepository {
	return &BookRepository{SlugRepository: NewSlugRepository[models.Book](collection, timeout)}
}

// ListRecent devuelve hasta limit libros activos, los más nuevos primero. limit 0 no limita.
func (r *BookRepository) ListRecent(ctx context.Context, limit int64) ([]models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"status": models.StatusActive}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list recent books")
	}
	defer cursor.Close(ctx)

	books := make([]models.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}
	return books, nil
}

// FindActiveDetail busca un libro activo por slug con su categoría expandida.
func (r *BookRepository) FindActiveDetail(ctx context.Context, slug string) (*models.BookDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"slug": slug, "status": models.StatusActive}}},
		{{Key: "$limit", Value: 1}},
	}
	books, err := r.aggregateDetail(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errors.Wrap(ErrNotFound, "find book detail")
	}
	return &books[0], nil
}

// Page devuelve una página de libros activos ordenada por sortField con la categoría expandida.
// order es 1 (asc) o -1 (desc).
func (r *BookRepository) Page(ctx context.Context, sortField string, order int, skip, limit int64) ([]models.BookDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusActive}}},
		{{Key: "$sort", Value: bson.D{{Key: sortField, Value: order}, {Key: "_id", Value: order}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}
	return r.aggregateDetail(ctx, pipeline)
}

func (r *BookRepository) aggregateDetail(ctx context.Context, pipeline mongo.Pipeline) ([]models.BookDetail, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         database.Categories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$categoryDoc",
			"preserveNullAndEmptyArrays": true,
		}}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate books")
	}
	defer cursor.Close(ctx)

	books := make([]models.BookDetail, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}
	return books, nil
}
