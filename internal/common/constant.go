// Package common contains shared constants and sentinel errors used across
// fcpanel components.
package common

// Header names sent on every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// BearerScheme prefixes the session token in the Authorization header.
const BearerScheme = "Bearer "

// Keys under which the session store persists client state.
const (
	SessionTokenKey = "token"
	SessionUserKey  = "user"
)
