// Package storage provides keyed persistence for record collections.
// A Backend maps a collection key to one serialized JSON document;
// interpretation of the bytes belongs to the repositories.
package storage

import "context"

// Backend is the durable mapping from collection key to serialized
// records. Load reports ok=false when the slot has never been written,
// which is distinct from an unavailable backend (err != nil).
type Backend interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
