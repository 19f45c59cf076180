package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/logging"
)

const (
	upsertSessionState = `
INSERT INTO session_states (session_id, state_json, version, window_count, pane_count, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
    state_json   = excluded.state_json,
    version      = excluded.version,
    window_count = excluded.window_count,
    pane_count   = excluded.pane_count,
    updated_at   = excluded.updated_at`

	selectSessionState     = `SELECT state_json FROM session_states WHERE session_id = ?`
	deleteSessionState     = `DELETE FROM session_states WHERE session_id = ?`
	selectAllSessionStates = `SELECT session_id, state_json FROM session_states ORDER BY updated_at DESC`
)

type sessionStateRepo struct {
	db *sql.DB
}

// NewSessionStateRepository creates a session snapshot repository backed by db.
func NewSessionStateRepository(db *sql.DB) repository.SessionStateRepository {
	return &sessionStateRepo{db: db}
}

// SaveSnapshot inserts or replaces the snapshot of state.SessionID.
func (r *sessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return errors.New("session state cannot be nil")
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	log.Debug().
		Str("session_id", string(state.SessionID)).
		Int("window_count", len(state.Windows)).
		Int("pane_count", state.CountPanes()).
		Msg("saving session state snapshot")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("snapshot rollback reported non-terminal error")
		}
	}()

	if _, err := tx.ExecContext(ctx, upsertSessionState,
		string(state.SessionID),
		string(stateJSON),
		state.Version,
		len(state.Windows),
		state.CountPanes(),
		state.SavedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("upsert session state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot transaction: %w", err)
	}
	return nil
}

// GetSnapshot returns the snapshot for sessionID, or nil when none exists.
func (r *sessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	var stateJSON string
	err := r.db.QueryRowContext(ctx, selectSessionState, string(sessionID)).Scan(&stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session state: %w", err)
	}

	var state entity.SessionState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("decode session state %s: %w", sessionID, err)
	}
	return &state, nil
}

// DeleteSnapshot removes a session's snapshot. Deleting a missing one is not an error.
func (r *sessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	logging.FromContext(ctx).Debug().Str("session_id", string(sessionID)).Msg("deleting session state snapshot")
	if _, err := r.db.ExecContext(ctx, deleteSessionState, string(sessionID)); err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}

// GetAllSnapshots returns every decodable snapshot, most recently saved first.
func (r *sessionStateRepo) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	rows, err := r.db.QueryContext(ctx, selectAllSessionStates)
	if err != nil {
		return nil, fmt.Errorf("query session states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []*entity.SessionState
	for rows.Next() {
		var id, stateJSON string
		if err := rows.Scan(&id, &stateJSON); err != nil {
			return nil, fmt.Errorf("scan session state: %w", err)
		}

		var state entity.SessionState
		if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
			logging.FromContext(ctx).Warn().Err(err).
				Str("session_id", id).
				Msg("skipping corrupted session state")
			continue
		}
		states = append(states, &state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session states: %w", err)
	}
	return states, nil
}
