package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/repository"
	"bookstore-catalog/internal/slug"
)

const subcategoryKind = "subcategory"

type SubcategoryService struct {
	store      SlugStore[models.Subcategory]
	categories SlugStore[models.Reference]
	now        func() time.Time
}

func NewSubcategoryService(store SlugStore[models.Subcategory], categories SlugStore[models.Reference]) *SubcategoryService {
	return &SubcategoryService{store: store, categories: categories, now: time.Now}
}

func (s *SubcategoryService) Create(ctx context.Context, in models.SubcategoryInput) (*models.Subcategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, in.Parent)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := &models.Subcategory{
		Reference: models.Reference{
			ID:        primitive.NewObjectID(),
			Name:      in.Name,
			Slug:      slug.Normalize(in.Name),
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Parent: parent,
	}
	if err := s.store.Insert(ctx, sub); err != nil {
		return nil, duplicate(err, subcategoryKind, sub.Slug)
	}
	return sub, nil
}

func (s *SubcategoryService) List(ctx context.Context) ([]models.Subcategory, error) {
	return s.store.ListActive(ctx)
}

func (s *SubcategoryService) Read(ctx context.Context, slugParam string) (*models.Subcategory, error) {
	key := slug.Normalize(slugParam)
	sub, err := s.store.FindBySlug(ctx, key, true)
	if err != nil {
		return nil, notFound(err, subcategoryKind, key)
	}
	return sub, nil
}

func (s *SubcategoryService) Update(ctx context.Context, slugParam string, in models.SubcategoryUpdate) (*models.Subcategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	sub, err := s.Read(ctx, slugParam)
	if err != nil {
		return nil, err
	}

	if in.Parent != nil {
		parent, err := s.resolveParent(ctx, *in.Parent)
		if err != nil {
			return nil, err
		}
		sub.Parent = parent
	}

	sub.Name = in.Name
	sub.Slug = slug.Normalize(in.Name)
	sub.UpdatedAt = s.now()
	if err := s.store.Replace(ctx, sub.ID, sub); err != nil {
		return nil, duplicate(notFound(err, subcategoryKind, sub.Slug), subcategoryKind, sub.Slug)
	}
	return sub, nil
}

func (s *SubcategoryService) Remove(ctx context.Context, slugParam string) (*models.Subcategory, error) {
	key := slug.Normalize(slugParam)
	sub, err := s.store.SetStatus(ctx, key, models.StatusInactive)
	if err != nil {
		return nil, notFound(err, subcategoryKind, key)
	}
	return sub, nil
}

func (s *SubcategoryService) resolveParent(ctx context.Context, value string) (primitive.ObjectID, error) {
	category, err := s.categories.FindBySlug(ctx, slug.Normalize(value), true)
	if errors.Is(err, repository.ErrNotFound) {
		return primitive.NilObjectID, &ReferenceError{Entity: "category", Field: "parent", Value: value}
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return category.ID, nil
}
