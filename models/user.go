package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User roles
const (
	RoleUser   = "user"
	RoleLawyer = "lawyer"
)

// User holds the structure for the users collection in mongo. Accounts are owned by the
// auth service, this api only reads them.
type User struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Email  string             `json:"email" bson:"email"`
	Avatar string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role   string             `json:"role" bson:"role"`
}

// UserSummary is the public slice of a user embedded in messages and conversations
type UserSummary struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}
