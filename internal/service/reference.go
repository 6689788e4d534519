package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/slug"
)

// ReferenceService maneja autores, editoriales, países y categorías.
type ReferenceService struct {
	kind  string
	store SlugStore[models.Reference]
	now   func() time.Time
}

// NewReferenceService crea el servicio para un tipo de referencia; kind se usa en los mensajes.
func NewReferenceService(kind string, store SlugStore[models.Reference]) *ReferenceService {
	return &ReferenceService{kind: kind, store: store, now: time.Now}
}

func (s *ReferenceService) Kind() string {
	return s.kind
}

func (s *ReferenceService) Create(ctx context.Context, in models.ReferenceInput) (*models.Reference, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	ref := &models.Reference{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Slug:      slug.Normalize(in.Name),
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, ref); err != nil {
		return nil, duplicate(err, s.kind, ref.Slug)
	}
	return ref, nil
}

func (s *ReferenceService) List(ctx context.Context) ([]models.Reference, error) {
	return s.store.ListActive(ctx)
}

func (s *ReferenceService) Read(ctx context.Context, slugParam string) (*models.Reference, error) {
	key := slug.Normalize(slugParam)
	ref, err := s.store.FindBySlug(ctx, key, true)
	if err != nil {
		return nil, notFound(err, s.kind, key)
	}
	return ref, nil
}

// Update cambia el nombre y recalcula el slug.
func (s *ReferenceService) Update(ctx context.Context, slugParam string, in models.ReferenceInput) (*models.Reference, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	ref, err := s.Read(ctx, slugParam)
	if err != nil {
		return nil, err
	}

	ref.Name = in.Name
	ref.Slug = slug.Normalize(in.Name)
	ref.UpdatedAt = s.now()
	if err := s.store.Replace(ctx, ref.ID, ref); err != nil {
		return nil, duplicate(notFound(err, s.kind, ref.Slug), s.kind, ref.Slug)
	}
	return ref, nil
}

// Remove marca el documento como Inactive. Repetirlo no es un error.
func (s *ReferenceService) Remove(ctx context.Context, slugParam string) (*models.Reference, error) {
	key := slug.Normalize(slugParam)
	ref, err := s.store.SetStatus(ctx, key, models.StatusInactive)
	if err != nil {
		return nil, notFound(err, s.kind, key)
	}
	return ref, nil
}
