package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Watch Model
type Watch struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"` // Document id
	Name        string             `bson:"name" json:"name"`                   // Product name
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"` // Product image URL
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
