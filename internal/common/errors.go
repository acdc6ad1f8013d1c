// Package common defines shared constants and sentinel errors used across
// the OnTrail client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Token errors.
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenSchema    = errors.New("token schema error")

	// Request pipeline errors.
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected http status")

	// Storage errors.
	ErrStorage = errors.New("storage failure")
)
