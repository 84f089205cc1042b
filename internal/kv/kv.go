package kv

import "context"

// Store is the local key-value collaborator. Writes to the same key must be
// applied in the order they are issued.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
