// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/paneshell/internal/domain/entity"
)

// SessionStateRepository persists session state snapshots.
type SessionStateRepository interface {
	// SaveSnapshot saves or updates a session state snapshot.
	SaveSnapshot(ctx context.Context, state *entity.SessionState) error

	// GetSnapshot returns the latest snapshot for a session, or nil when none exists.
	GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error)

	// DeleteSnapshot removes a session's snapshot.
	DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error

	// GetAllSnapshots returns every stored snapshot, most recent first.
	GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error)
}
