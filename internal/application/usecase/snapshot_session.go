package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/logging"
)

// ErrSessionIDRequired is returned when a session operation has no session ID.
var ErrSessionIDRequired = errors.New("session id required")

// SnapshotSessionUseCase captures the live windows and saves them.
type SnapshotSessionUseCase struct {
	registry  *WindowRegistry
	panes     *ManagePanesUseCase
	fields    *ChromeFieldsUseCase
	stateRepo repository.SessionStateRepository
	now       func() time.Time
}

// NewSnapshotSessionUseCase creates a new SnapshotSessionUseCase.
func NewSnapshotSessionUseCase(
	registry *WindowRegistry,
	panes *ManagePanesUseCase,
	fields *ChromeFieldsUseCase,
	stateRepo repository.SessionStateRepository,
) *SnapshotSessionUseCase {
	return &SnapshotSessionUseCase{
		registry:  registry,
		panes:     panes,
		fields:    fields,
		stateRepo: stateRepo,
		now:       time.Now,
	}
}

// SnapshotInput contains the parameters for creating a session snapshot.
type SnapshotInput struct {
	SessionID entity.SessionID
}

// Capture reads every window into a SessionState without saving it.
func (uc *SnapshotSessionUseCase) Capture(sessionID entity.SessionID) *entity.SessionState {
	count := uc.registry.Count()
	state := &entity.SessionState{
		Version:       entity.SessionStateVersion,
		SessionID:     sessionID,
		Windows:       make([]entity.WindowSnapshot, 0, count),
		FocusedWindow: uc.registry.FocusedIndex(),
		SavedAt:       uc.now().UTC(),
	}

	for i := 0; i < count; i++ {
		window, ok := uc.registry.Resolve(i)
		if !ok {
			continue
		}
		visibility := uc.panes.Visibility(i)
		snap := entity.WindowSnapshot{
			Index:       i,
			Title:       window.Title(),
			Frame:       window.Frame(),
			Visible:     window.IsVisible(),
			Key:         window.IsKey(),
			AddressText: uc.fields.AddressText(i),
			FocusedPane: entity.VisibleIndex(visibility),
			Panes:       make([]entity.PaneSnapshot, 0, len(visibility)),
		}
		for p, visible := range visibility {
			pane := entity.PaneSnapshot{Visible: visible}
			if webView, ok := uc.panes.At(i, p); ok {
				pane.URI = webView.URI()
			}
			snap.Panes = append(snap.Panes, pane)
		}
		state.Windows = append(state.Windows, snap)
	}
	return state
}

// Execute creates a snapshot of the current session state and saves it.
func (uc *SnapshotSessionUseCase) Execute(ctx context.Context, input SnapshotInput) (*entity.SessionState, error) {
	log := logging.FromContext(ctx)

	if input.SessionID == "" {
		return nil, ErrSessionIDRequired
	}

	state := uc.Capture(input.SessionID)

	log.Debug().
		Str("session_id", string(input.SessionID)).
		Int("window_count", len(state.Windows)).
		Int("pane_count", state.CountPanes()).
		Msg("creating session snapshot")

	if err := uc.stateRepo.SaveSnapshot(ctx, state); err != nil {
		return nil, fmt.Errorf("save session snapshot: %w", err)
	}

	return state, nil
}
