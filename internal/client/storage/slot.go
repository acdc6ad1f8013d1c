// Package storage maps typed, JSON-serializable values onto single keys of a
// kvstore.Store. A Slot is either absent or holds exactly one value; both are
// normal resting states.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/ontrail/internal/client/kvstore"
	"github.com/dmitrijs2005/ontrail/internal/common"
)

// Error reports a failed slot operation. It matches common.ErrStorage.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() []error { return []error{common.ErrStorage, e.Err} }

// Slot persists one optional value of type T under a stable key.
type Slot[T any] struct {
	store kvstore.Store
	key   string
}

func NewSlot[T any](store kvstore.Store, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Key returns the storage key of the slot.
func (s *Slot[T]) Key() string { return s.key }

// Get loads the stored value. found is false when the slot is empty.
func (s *Slot[T]) Get(ctx context.Context) (value T, found bool, err error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return value, false, &Error{Op: "get", Key: s.key, Err: err}
	}
	if !ok {
		return value, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, &Error{Op: "decode", Key: s.key, Err: err}
	}
	return value, true, nil
}

// Set stores v, replacing any previous value.
func (s *Slot[T]) Set(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		return &Error{Op: "set", Key: s.key, Err: err}
	}
	return nil
}

// Clear empties the slot.
func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.key); err != nil {
		return &Error{Op: "clear", Key: s.key, Err: err}
	}
	return nil
}
