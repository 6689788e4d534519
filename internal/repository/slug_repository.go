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

// SlugRepository guarda documentos identificados por un slug único y un status.
type SlugRepository[T any] struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewSlugRepository[T any](collection *mongo.Collection, timeout time.Duration) *SlugRepository[T] {
	return &SlugRepository[T]{collection: collection, timeout: timeout}
}

func (r *SlugRepository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Insert guarda un documento nuevo. El llamador asigna ID y fechas.
func (r *SlugRepository[T]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, doc)
	if err = translate(err); err != nil {
		return errors.Wrapf(err, "insert into %s", r.collection.Name())
	}
	return nil
}

// FindBySlug busca por slug; con activeOnly descarta los documentos Inactive.
func (r *SlugRepository[T]) FindBySlug(ctx context.Context, slug string, activeOnly bool) (*T, error) {
	filter := bson.M{"slug": slug}
	if activeOnly {
		filter["status"] = models.StatusActive
	}
	return r.findOne(ctx, filter)
}

func (r *SlugRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SlugRepository[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc T
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, errors.Wrapf(translate(err), "find in %s", r.collection.Name())
	}
	return &doc, nil
}

// ListActive devuelve los documentos activos, los más nuevos primero.
func (r *SlugRepository[T]) ListActive(ctx context.Context) ([]T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.StatusActive}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", r.collection.Name())
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.collection.Name())
	}
	return docs, nil
}

// Replace reemplaza el documento completo con el _id dado si sigue Active.
// Un borrado lógico que llegó antes gana: devuelve ErrNotFound.
func (r *SlugRepository[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": id, "status": models.StatusActive}
	result, err := r.collection.ReplaceOne(ctx, filter, doc)
	if err = translate(err); err != nil {
		return errors.Wrapf(err, "replace in %s", r.collection.Name())
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "replace in %s", r.collection.Name())
	}
	return nil
}

// SetStatus cambia el status del documento con ese slug y devuelve la versión actualizada.
func (r *SlugRepository[T]) SetStatus(ctx context.Context, slug string, status models.Status) (*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&doc)
	if err != nil {
		return nil, errors.Wrapf(translate(err), "set status in %s", r.collection.Name())
	}
	return &doc, nil
}

// CountActive cuenta los documentos activos.
func (r *SlugRepository[T]) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{"status": models.StatusActive})
	return n, errors.Wrapf(err, "count %s", r.collection.Name())
}
