package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference representa un autor, editorial, país o categoría.
// Los cuatro comparten la misma forma de documento.
type Reference struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	Status    Status             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Subcategory cuelga de una categoría padre.
type Subcategory struct {
	Reference `bson:",inline"`
	Parent    primitive.ObjectID `json:"parent" bson:"parent"`
}

// ReferenceInput es el cuerpo de creación/actualización de un Reference.
type ReferenceInput struct {
	Name string `json:"name" validate:"required,min=2,max=32,slug"`
}

type SubcategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=32,slug"`
	// Parent es el slug (o nombre) de la categoría padre
	Parent string `json:"parent" validate:"required,min=2,max=50"`
}

type SubcategoryUpdate struct {
	Name   string  `json:"name" validate:"required,min=2,max=32,slug"`
	Parent *string `json:"parent,omitempty" validate:"omitempty,min=2,max=50"`
}
