// Package repository persists session snapshots as JSON files.
package repository

import (
	"context"

	"github.com/okian/ladder/internal/domain/model"
)

// Store provides durable access to a session snapshot.
type Store interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, state model.State) error

	// Load reads the last saved snapshot.
	// Returns ErrNoSnapshot when nothing has been saved yet.
	Load(ctx context.Context) (model.State, error)
}
