// Package store owns the in-memory application state and coordinates the
// persistence collaborator. All mutations go through the Store, which
// recomputes streak state and attempts a save after every change.
package store

import (
	"context"

	"github.com/fbarbosa/medstudy/internal/study"
)

//go:generate mockgen -source=repository.go -destination=../mocks/store/mock_repository.go -package=mock_store

// Repository is the persistence collaborator. The core does not define the
// storage medium; it only requires that Load seeds the model on startup and
// that Save persists the full snapshot after every mutating operation.
//
// Load returns (nil, nil) when no prior state exists, in which case the
// caller falls back to the built-in seed dataset.
type Repository interface {
	Load(ctx context.Context) (*study.Snapshot, error)
	Save(ctx context.Context, snapshot *study.Snapshot) error
}
