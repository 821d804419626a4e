// Package model defines the data structures used throughout the application.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered account.
//
// The store assigns the ObjectID on insert — the application never generates
// user ids itself. Routes and session tokens carry the id in hex form.
//
// PasswordHash holds the bcrypt hash of the user's password, never the
// plaintext. It is empty for accounts created through Google login, which
// have no local password.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
}

// IDHex returns the user's id as the hex string used in session tokens
// and routes.
func (u *User) IDHex() string {
	return u.ID.Hex()
}
