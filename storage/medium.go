// Package storage provides the key-value media a card store can persist to.
package storage

import "context"

// Medium is a persistent string key-value store, the same contract a browser's
// local storage offers.
type Medium interface {
	// GetItem returns the value stored under key. ok is false when nothing is
	// stored there.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	// SetItem replaces the value stored under key.
	SetItem(ctx context.Context, key, value string) error
}
