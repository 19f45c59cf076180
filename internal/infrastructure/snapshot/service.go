// Package snapshot autosaves the running session.
package snapshot

import (
	"context"
	"time"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/application/usecase"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/logging"
	"github.com/bnema/paneshell/internal/ui/mainloop"
)

const coalesceKey = "session-snapshot"

// Service saves session snapshots from the UI loop. Bursts of MarkDirty
// collapse into one save, and saves are spaced at least interval apart.
//
// Every method must be called from the goroutine that owns the loop; the
// throttle timer hands its work back through the loop.
type Service struct {
	snapshotUC *usecase.SnapshotSessionUseCase
	sessionID  entity.SessionID
	interval   time.Duration
	loop       port.Scheduler
	coalescer  *mainloop.Coalescer

	ctx      context.Context
	dirty    bool
	stopped  bool
	lastSave time.Time
	timer    *time.Timer
}

// NewService creates a snapshot service. A non-positive interval saves on
// every coalesced change.
func NewService(
	snapshotUC *usecase.SnapshotSessionUseCase,
	sessionID entity.SessionID,
	loop port.Scheduler,
	intervalMs int,
) *Service {
	if intervalMs < 0 {
		intervalMs = 0
	}
	return &Service{
		snapshotUC: snapshotUC,
		sessionID:  sessionID,
		interval:   time.Duration(intervalMs) * time.Millisecond,
		loop:       loop,
		coalescer:  mainloop.NewCoalescer(loop),
		ctx:        context.Background(),
	}
}

// Start sets the context autosaves log to.
func (s *Service) Start(ctx context.Context) {
	s.ctx = ctx
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("snapshot service started")
}

// Dirty reports whether changes have not been saved yet.
func (s *Service) Dirty() bool {
	return s.dirty
}

// SetInterval changes the minimum spacing between saves.
func (s *Service) SetInterval(intervalMs int) {
	if intervalMs < 0 {
		intervalMs = 0
	}
	s.interval = time.Duration(intervalMs) * time.Millisecond
}

// MarkDirty signals that the session changed.
func (s *Service) MarkDirty() {
	if s.stopped {
		return
	}
	s.dirty = true
	s.coalescer.Post(coalesceKey, s.flush)
}

// SaveNow saves immediately, dirty or not.
func (s *Service) SaveNow(ctx context.Context) (*entity.SessionState, error) {
	state, err := s.snapshotUC.Execute(ctx, usecase.SnapshotInput{SessionID: s.sessionID})
	if err != nil {
		return nil, err
	}
	s.lastSave = time.Now()
	s.dirty = false
	return state, nil
}

// Stop cancels pending work and saves once more if anything changed.
func (s *Service) Stop(ctx context.Context) error {
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.coalescer.Destroy()

	if !s.dirty {
		return nil
	}
	_, err := s.SaveNow(ctx)
	return err
}

func (s *Service) flush() {
	if !s.dirty || s.stopped {
		return
	}

	if wait := s.interval - time.Since(s.lastSave); wait > 0 {
		if s.timer == nil {
			s.timer = time.AfterFunc(wait, func() {
				s.loop.Post(func() {
					s.timer = nil
					if !s.stopped {
						s.coalescer.Post(coalesceKey, s.flush)
					}
				})
			})
		}
		return
	}

	if _, err := s.SaveNow(s.ctx); err != nil {
		logging.FromContext(s.ctx).Warn().Err(err).Msg("autosave failed")
	}
}
