// Package common contains shared constants and sentinel errors used across
// OnTrail client components.
package common

// Header names set by the request pipeline.
const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderPrefer        = "Prefer"
	HeaderRange         = "Range"
	HeaderRangeUnit     = "Range-Unit"
	HeaderRequestID     = "X-Request-Id"
)

// Media types understood by the backend.
const (
	MediaTypeJSON         = "application/json"
	MediaTypePgrstObject  = "application/vnd.pgrst.object+json"
	BearerPrefix          = "Bearer "
	LoginPath             = "/rpc/login"
	SessionStorageKey     = "@OnTrail:auth_token"
	CredentialsStorageKey = "@OnTrail:credentials"
)
