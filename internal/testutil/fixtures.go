package testutil

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/slug"
)

// Catalog reúne un store en memoria por colección.
type Catalog struct {
	Books         *BookMemoryStore
	Authors       *MemoryStore[models.Reference]
	Editorials    *MemoryStore[models.Reference]
	Countries     *MemoryStore[models.Reference]
	Categories    *MemoryStore[models.Reference]
	Subcategories *MemoryStore[models.Subcategory]
	Users         *UserMemoryStore
}

func NewCatalog() *Catalog {
	categories := NewReferenceStore()
	return &Catalog{
		Books:         NewBookStore(categories),
		Authors:       NewReferenceStore(),
		Editorials:    NewReferenceStore(),
		Countries:     NewReferenceStore(),
		Categories:    categories,
		Subcategories: NewSubcategoryStore(),
		Users:         NewUserStore(),
	}
}

// SeedReference guarda un Reference con el slug derivado del nombre.
func SeedReference(store *MemoryStore[models.Reference], name string, status models.Status) models.Reference {
	ref := models.Reference{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Slug:      slug.Normalize(name),
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := store.Insert(context.Background(), &ref); err != nil {
		panic(err)
	}
	return ref
}

// SeedDefaults carga las referencias del ejemplo de Rebelión en la granja, todas activas.
func (c *Catalog) SeedDefaults() {
	SeedReference(c.Authors, "Stephen King", models.StatusActive)
	SeedReference(c.Editorials, "Doubleday", models.StatusActive)
	SeedReference(c.Countries, "Chile", models.StatusActive)
	SeedReference(c.Categories, "Ficción", models.StatusActive)
}

// BookInput devuelve un cuerpo válido que referencia SeedDefaults.
func BookInput() models.BookInput {
	return models.BookInput{
		Title:       "Rebelión en la granja",
		Description: "Rebelión en la granja es una novela corta satírica del escritor británico George Orwell.",
		Price:       300,
		ISBN:        "123123123",
		Edition:     "Primera edición",
		Pages:       320,
		Editorial:   "Doubleday",
		Author:      "stephen-king",
		Country:     "chile",
		Category:    "ficcion",
	}
}
