package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/service"
	"bookstore-catalog/internal/testutil"
)

func TestSubcategoryService(t *testing.T) {
	ctx := context.Background()
	catalog := testutil.NewCatalog()
	ficcion := testutil.SeedReference(catalog.Categories, "Ficción", models.StatusActive)
	ensayo := testutil.SeedReference(catalog.Categories, "Ensayo", models.StatusActive)
	svc := service.NewSubcategoryService(catalog.Subcategories, catalog.Categories)

	sub, err := svc.Create(ctx, models.SubcategoryInput{Name: "Suspenso", Parent: "Ficción"})
	require.NoError(t, err)
	assert.Equal(t, "suspenso", sub.Slug)
	assert.Equal(t, ficcion.ID, sub.Parent)

	_, err = svc.Create(ctx, models.SubcategoryInput{Name: "Terror", Parent: "poesia"})
	var refErr *service.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "parent", refErr.Field)
	assert.Equal(t, 1, catalog.Subcategories.Len())

	moved, err := svc.Update(ctx, "suspenso", models.SubcategoryUpdate{Name: "Suspenso", Parent: strPtr("ensayo")})
	require.NoError(t, err)
	assert.Equal(t, ensayo.ID, moved.Parent)

	renamed, err := svc.Update(ctx, "suspenso", models.SubcategoryUpdate{Name: "Thriller"})
	require.NoError(t, err)
	assert.Equal(t, "thriller", renamed.Slug)
	assert.Equal(t, ensayo.ID, renamed.Parent)

	removed, err := svc.Remove(ctx, "thriller")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, removed.Status)

	_, err = svc.Read(ctx, "thriller")
	var nf *service.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
