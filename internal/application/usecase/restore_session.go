package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/logging"
)

// ErrSessionNotFound is returned when a session state cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrVersionMismatch is returned when the session state version is incompatible.
var ErrVersionMismatch = errors.New("session state version mismatch")

// RestoreSessionUseCase reopens the windows of a saved snapshot.
type RestoreSessionUseCase struct {
	stateRepo repository.SessionStateRepository
	registry  *WindowRegistry
	windows   *ManageWindowsUseCase
	panes     *ManagePanesUseCase
	fields    *ChromeFieldsUseCase
	scheduler port.Scheduler
}

// NewRestoreSessionUseCase creates a new RestoreSessionUseCase.
func NewRestoreSessionUseCase(
	stateRepo repository.SessionStateRepository,
	registry *WindowRegistry,
	windows *ManageWindowsUseCase,
	panes *ManagePanesUseCase,
	fields *ChromeFieldsUseCase,
	scheduler port.Scheduler,
) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{
		stateRepo: stateRepo,
		registry:  registry,
		windows:   windows,
		panes:     panes,
		fields:    fields,
		scheduler: scheduler,
	}
}

// RestoreInput contains the parameters for restoring a session.
type RestoreInput struct {
	SessionID entity.SessionID
}

// RestoreOutput contains the restored session state.
type RestoreOutput struct {
	State *entity.SessionState
	// Done is closed on the main loop once every window has its panes back.
	Done <-chan struct{}
}

// Load fetches and validates a snapshot without touching any window.
func (uc *RestoreSessionUseCase) Load(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	log := logging.FromContext(ctx)

	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	state, err := uc.stateRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session snapshot: %w", err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	if state.Version > entity.SessionStateVersion {
		log.Warn().
			Int("state_version", state.Version).
			Int("current_version", entity.SessionStateVersion).
			Msg("session state version is newer than current version")
		return nil, ErrVersionMismatch
	}
	return state, nil
}

// Execute loads a snapshot and reopens its windows. It must run on the main
// loop. Panes are re-inserted one after another so they keep their order.
// When a window fails to open, the windows already reopened are closed again
// and no partial session is left on screen.
func (uc *RestoreSessionUseCase) Execute(ctx context.Context, input RestoreInput) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	state, err := uc.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", string(input.SessionID)).
		Int("window_count", len(state.Windows)).
		Int("pane_count", state.CountPanes()).
		Msg("restoring session state")

	var wg sync.WaitGroup
	ids := make([]string, 0, len(state.Windows))
	for _, snap := range state.Windows {
		opened, err := uc.windows.Open(ctx)
		if err != nil {
			uc.closeWindows(ctx, ids)
			return nil, fmt.Errorf("restore window %d: %w", snap.Index, err)
		}
		window, ok := uc.registry.Resolve(opened.Index)
		if !ok {
			continue
		}
		ids = append(ids, window.ID())
		wg.Add(1)
		uc.restorePanes(ctx, window.ID(), snap, 0, opened.Pending, wg.Done)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		uc.scheduler.Post(func() {
			if state.FocusedWindow >= 0 && state.FocusedWindow < len(ids) {
				if index, ok := uc.registry.IndexOf(ids[state.FocusedWindow]); ok && state.Windows[state.FocusedWindow].Visible {
					uc.windows.Focus(ctx, index)
				}
			}
			log.Info().Str("session_id", string(input.SessionID)).Msg("session restored")
			close(done)
		})
	}()

	return &RestoreOutput{State: state, Done: done}, nil
}

func (uc *RestoreSessionUseCase) closeWindows(ctx context.Context, ids []string) {
	for _, id := range ids {
		if index, ok := uc.registry.IndexOf(id); ok {
			uc.windows.Close(ctx, index)
		}
	}
	if len(ids) > 0 {
		logging.FromContext(ctx).Warn().Int("window_count", len(ids)).Msg("restore aborted, reopened windows closed")
	}
}

// restorePanes loads pane i of snap into the pane pending delivers, then
// chains the insertion of pane i+1. The window is addressed by its native ID
// since indices may shift while insertions are in flight.
func (uc *RestoreSessionUseCase) restorePanes(
	ctx context.Context,
	windowID string,
	snap entity.WindowSnapshot,
	i int,
	pending *PendingPane,
	finished func(),
) {
	pending.Then(func(result PaneResult) {
		index, ok := uc.registry.IndexOf(windowID)
		if !ok {
			finished()
			return
		}
		if result.Inserted {
			switch {
			case i < len(snap.Panes):
				if uri := snap.Panes[i].URI; uri != "" {
					result.Pane.LoadURI(uri)
				}
			default:
				// The snapshot had no panes; drop the one Open inserted.
				uc.panes.Remove(ctx, index, result.PaneIndex)
			}
		}
		if i+1 < len(snap.Panes) {
			uc.restorePanes(ctx, windowID, snap, i+1, uc.panes.AddAndFocus(ctx, index), finished)
			return
		}
		uc.applyWindowState(ctx, index, snap)
		finished()
	})
}

func (uc *RestoreSessionUseCase) applyWindowState(ctx context.Context, index int, snap entity.WindowSnapshot) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	window.SetTitle(snap.Title)
	if snap.Frame.Size.Width > 0 && snap.Frame.Size.Height > 0 {
		window.SetFrame(snap.Frame)
	}
	uc.fields.SetAddressText(index, snap.AddressText)

	visible := make([]bool, len(snap.Panes))
	for i, p := range snap.Panes {
		visible[i] = p.Visible
	}
	if entity.CountVisible(visible) > 0 {
		uc.panes.Focus(ctx, index, entity.VisibleIndex(visible))
	} else {
		uc.panes.Focus(ctx, index, -1)
	}

	if !snap.Visible {
		window.OrderOut()
	}
}

// DeleteSnapshot removes a session's snapshot.
func (uc *RestoreSessionUseCase) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	return uc.stateRepo.DeleteSnapshot(ctx, sessionID)
}
