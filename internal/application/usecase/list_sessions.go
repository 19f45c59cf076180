package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/logging"
)

const defaultSessionListLimit = 50

// ListSessionsUseCase summarizes saved session snapshots.
type ListSessionsUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewListSessionsUseCase creates a new ListSessionsUseCase.
func NewListSessionsUseCase(stateRepo repository.SessionStateRepository) *ListSessionsUseCase {
	return &ListSessionsUseCase{stateRepo: stateRepo}
}

// Execute returns up to limit sessions, most recently saved first.
// A non-positive limit uses the default of 50.
func (uc *ListSessionsUseCase) Execute(ctx context.Context, limit int) ([]entity.SessionInfo, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}

	snapshots, err := uc.stateRepo.GetAllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session snapshots: %w", err)
	}

	infos := make([]entity.SessionInfo, 0, len(snapshots))
	for _, state := range snapshots {
		if state == nil {
			continue
		}
		infos = append(infos, entity.SessionInfo{
			SessionID:   state.SessionID,
			WindowCount: len(state.Windows),
			PaneCount:   state.CountPanes(),
			UpdatedAt:   state.SavedAt,
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	if len(infos) > limit {
		infos = infos[:limit]
	}

	logging.FromContext(ctx).Debug().Int("count", len(infos)).Msg("listed sessions")
	return infos, nil
}
