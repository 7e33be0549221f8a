package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only role value that grants administrator privilege.
// Any other value, or an absent role, means ordinary customer.
const RoleAdmin = "admin"

// User Model
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"` // Document id
	Email       string             `bson:"email" json:"email"`                 // Unique key
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Password    string             `bson:"password,omitempty" json:"-"`  // Bcrypt hash, never serialized
	Role        string             `bson:"role,omitempty" json:"role,omitempty"` // "admin" or absent
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
