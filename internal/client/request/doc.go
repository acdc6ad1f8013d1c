// Package request builds and dispatches HTTP requests against the OnTrail
// backend.
//
// # Descriptors and builders
//
// A Descriptor is an immutable description of a request that has not been
// sent yet. A Builder is a pure function Descriptor -> Descriptor. Requests
// are assembled by folding builders left to right over New(method, path, host):
//
//	d := request.Apply(request.New(request.MethodGet, "/trails", host),
//	    request.WithQuery(request.Params{"limit": "10"}),
//	    request.WithHeader(request.Params{"Prefer": "count=exact"}),
//	)
//
// Query and header builders merge right-biased: a later builder overwrites
// an earlier value for the same key. Builders copy, they never mutate their
// input, and they never fail.
//
// # Dispatch
//
// Client.Send translates a Descriptor to an *http.Request and executes it
// exactly once. No retries, no timeout (use the context or the Doer for
// that). Failures are typed:
//
//   - *TransportError: no response was received (DNS, connection, ctx).
//   - *StatusError: a response with a non-2xx status; carries status and body.
//
// Both match the sentinels in package common via errors.Is.
package request
