package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review Model
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"` // Document id
	Name    string             `bson:"name,omitempty" json:"name,omitempty"` // Reviewer name
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Rating  float64            `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
}
