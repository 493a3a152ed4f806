// Package common contains shared constants and sentinel errors used across
// bloglist components.
package common

const (
	// AuthorizationHeader carries the bearer token on API requests.
	AuthorizationHeader = "Authorization"

	// BearerScheme is the authorization scheme accepted by the API.
	// It is matched case-insensitively.
	BearerScheme = "bearer"
)
