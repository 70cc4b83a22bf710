// Package store keeps finished analysis runs for later retrieval.
package store

import "context"

// Store holds values by id. Implementations may drop old values, so a
// missing id is reported through the bool, not as an error.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Len() int
	NewID() string
}
