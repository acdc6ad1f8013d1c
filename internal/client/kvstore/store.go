// Package kvstore holds the persistent key-value stores the client keeps its
// session and credentials in.
//
// All backends share one contract: a missing key is not an error
// (Get reports found=false), Set overwrites, and Remove of a missing key is a
// no-op. No backend offers atomicity across keys and callers must not rely on it.
package kvstore

import "context"

// Store is the raw string key-value primitive.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
