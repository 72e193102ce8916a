package entity

import "github.com/google/uuid"

// Visitor is an authenticated site visitor, taken from the bearer token.
type Visitor struct {
	Id       uuid.UUID
	Email    string
	FullName string
}
