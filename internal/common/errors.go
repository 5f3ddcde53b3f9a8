// Package common defines shared constants and sentinel errors used across
// fcpanel layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors raised before any request leaves the client.
	ErrRequiredField    = errors.New("required field is empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidAddress   = errors.New("invalid IP address")
	ErrInvalidSSHKey    = errors.New("invalid SSH public key")
	ErrInvalidResources = errors.New("invalid VM resources")

	// Catalog lookups.
	ErrUnknownSize = errors.New("unknown VM size")
	ErrUnknownOS   = errors.New("unknown OS image")

	// Session store.
	ErrNoSession      = errors.New("no stored session")
	ErrCorruptProfile = errors.New("stored user profile is unreadable")
)
