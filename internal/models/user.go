package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSubscriber = "subscriber"
	RoleAdmin      = "admin"
)

// CartItem es una línea del carrito de un usuario.
type CartItem struct {
	Book  primitive.ObjectID `json:"book" bson:"book"`
	Count int                `json:"count" bson:"count"`
}

type User struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Email     string               `json:"email" bson:"email"`
	Picture   string               `json:"picture,omitempty" bson:"picture,omitempty"`
	Role      string               `json:"role" bson:"role"`
	Cart      []CartItem           `json:"cart" bson:"cart"`
	Address   string               `json:"address,omitempty" bson:"address,omitempty"`
	Wishlist  []primitive.ObjectID `json:"wishlist" bson:"wishlist"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}
