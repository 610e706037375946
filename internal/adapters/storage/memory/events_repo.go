package memory

import (
	"context"
	"sync"

	"studio-gallery/internal/domain/selection"
)

type EventRepo struct {
	mu      sync.RWMutex
	byGrant map[string][]selection.Event
}

func NewEventRepo() *EventRepo {
	return &EventRepo{byGrant: make(map[string][]selection.Event)}
}

func (r *EventRepo) ListByGrant(ctx context.Context, grantID string) ([]selection.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byGrant[grantID]
	out := make([]selection.Event, len(src))
	copy(out, src)
	return out, nil
}

// append es el único camino de escritura y solo lo usa SelectionRepo,
// dentro de su sección crítica. Append-only: acá no hay update ni delete.
func (r *EventRepo) append(e selection.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byGrant[e.GrantID] = append(r.byGrant[e.GrantID], e)
}
