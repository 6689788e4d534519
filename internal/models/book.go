package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book representa un libro del catálogo tal como se guarda en la colección.
type Book struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Price       int64              `json:"price" bson:"price"`
	ISBN        string             `json:"isbn" bson:"isbn"`
	Edition     string             `json:"edition" bson:"edition"`
	Pages       int                `json:"pages" bson:"pages"`
	Editorial   primitive.ObjectID `json:"editorial" bson:"editorial"`
	Author      primitive.ObjectID `json:"author" bson:"author"`
	Country     primitive.ObjectID `json:"country" bson:"country"`
	Category    primitive.ObjectID `json:"category" bson:"category"`
	Slug        string             `json:"slug" bson:"slug"`
	Status      Status             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookDetail es un Book con la categoría expandida en línea.
type BookDetail struct {
	Book     `bson:",inline"`
	Category *Reference `json:"category" bson:"categoryDoc,omitempty"`
}

// BookInput es el cuerpo de POST /book. Las referencias llegan como slugs legibles.
type BookInput struct {
	Title       string `json:"title" validate:"required,max=32,slug"`
	Description string `json:"description" validate:"required,max=2000"`
	Price       int64  `json:"price" validate:"gte=0"`
	ISBN        string `json:"isbn" validate:"required,max=32"`
	Edition     string `json:"edition" validate:"required,max=500"`
	Pages       int    `json:"pages" validate:"gt=0"`
	Editorial   string `json:"editorial" validate:"required,min=2,max=50"`
	Author      string `json:"author" validate:"required,min=2,max=50"`
	Country     string `json:"country" validate:"required,min=2,max=50"`
	Category    string `json:"category" validate:"required,min=2,max=50"`
}

// BookUpdate representa los campos actualizables de un libro.
// El título es obligatorio porque el slug se recalcula siempre.
type BookUpdate struct {
	Title       string  `json:"title" validate:"required,max=32,slug"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	ISBN        *string `json:"isbn,omitempty" validate:"omitempty,max=32"`
	Edition     *string `json:"edition,omitempty" validate:"omitempty,max=500"`
	Pages       *int    `json:"pages,omitempty" validate:"omitempty,gt=0"`
	Editorial   *string `json:"editorial,omitempty" validate:"omitempty,min=2,max=50"`
	Author      *string `json:"author,omitempty" validate:"omitempty,min=2,max=50"`
	Country     *string `json:"country,omitempty" validate:"omitempty,min=2,max=50"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=2,max=50"`
}

// PageRequest es el cuerpo de POST /books.
type PageRequest struct {
	Sort  string `json:"sort" validate:"omitempty,oneof=createdAt updatedAt title price pages"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
	Page  int    `json:"page" validate:"lte=100000"`
}
