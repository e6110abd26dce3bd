package models

import "time"

// Operator is the document shape of an internal staff identity.
type Operator struct {
	OperatorID    string    `bson:"_id"`
	Email         string    `bson:"email"`
	Name          string    `bson:"name"`
	PasswordHash  string    `bson:"password_hash"`
	Role          string    `bson:"role"`
	IsActive      bool      `bson:"is_active"`
	CreatedAt     time.Time `bson:"created_at"`
	CreatedBy     string    `bson:"created_by"`
	LastUpdatedAt time.Time `bson:"last_updated_at"`
	LastUpdatedBy string    `bson:"last_updated_by"`
}
