// Package common contains shared constants and sentinel errors used across
// AlumniLink components.
package common

const (
	// AuthorizationHeader carries the bearer credential on HTTP requests.
	AuthorizationHeader = "Authorization"
	// BearerScheme is the scheme prefix expected in AuthorizationHeader.
	BearerScheme = "Bearer"
	// TokenStorageKey is the metadata key under which the client keeps
	// the current credential.
	TokenStorageKey = "token"
	// PublicEntryPath is where anonymous visitors are sent.
	PublicEntryPath = "/"
)
