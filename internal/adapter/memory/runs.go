package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
)

var _ secondary.RunRepository = (*RunRepository)(nil)

// RunRepository keeps at most capacity runs, dropping the oldest first.
type RunRepository struct {
	mu       sync.RWMutex
	capacity int
	order    []uuid.UUID
	runs     map[uuid.UUID]domain.RunRecord
}

func NewRunRepository(capacity int) *RunRepository {
	if capacity <= 0 {
		capacity = 256
	}
	return &RunRepository{
		capacity: capacity,
		runs:     make(map[uuid.UUID]domain.RunRecord),
	}
}

func (r *RunRepository) SaveRun(_ context.Context, run *domain.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; !ok {
		r.order = append(r.order, run.ID)
	}
	r.runs[run.ID] = *run

	for len(r.order) > r.capacity {
		delete(r.runs, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

func (r *RunRepository) GetRun(_ context.Context, id uuid.UUID) (*domain.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(_ context.Context, artifactKey string, limit int) ([]*domain.RunRecord, error) {
	r.mu.RLock()
	list := []*domain.RunRecord{}
	for _, run := range r.runs {
		if run.ArtifactKey == artifactKey {
			run := run
			list = append(list, &run)
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].StartedAt.After(list[j].StartedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
