package models

import "time"

// RevokedToken marks a credential that was logged out before it expired.
// Rows are kept until ExpiresAt, after which the credential is rejected
// anyway.
type RevokedToken struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
