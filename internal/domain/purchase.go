package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// StatusShipped is the only status value a purchase ever takes. A purchase
// with no status field is still pending; cancellation deletes the document.
const StatusShipped = "Shipped"

// Purchase Model
type Purchase struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"` // Document id
	Email   string             `bson:"email" json:"email"`                 // Owning customer
	Item    string             `bson:"item,omitempty" json:"item,omitempty"` // Ordered watch name
	Price   float64            `bson:"price,omitempty" json:"price,omitempty"`
	Address string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status  string             `bson:"status,omitempty" json:"status,omitempty"` // Absent until shipped
}
