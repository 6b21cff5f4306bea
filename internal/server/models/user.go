// Package models holds the server-side persistent records.
package models

import (
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// User is an identity record. Email is unique and stored normalised;
// Role never changes after creation.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         common.Role
	CreatedAt    time.Time
}
