package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"studio-gallery/internal/domain/grants"
)

type GrantRepo struct {
	mu      sync.RWMutex
	byID    map[string]grants.Grant
	byToken map[string]string // token -> grant id
}

func NewGrantRepo() *GrantRepo {
	return &GrantRepo{
		byID:    make(map[string]grants.Grant),
		byToken: make(map[string]string),
	}
}

func (r *GrantRepo) Create(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" || g.Token == "" {
		return errors.New("grant id/token required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	if _, taken := r.byToken[g.Token]; taken {
		return grants.ErrDuplicateToken
	}

	r.byID[g.ID] = g
	r.byToken[g.Token] = g.ID
	return nil
}

func (r *GrantRepo) Update(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[g.ID]
	if !exists {
		return grants.ErrNotFound
	}

	// El token puede rotar: re-indexar cuidando el unique.
	if g.Token != prev.Token {
		if owner, taken := r.byToken[g.Token]; taken && owner != g.ID {
			return grants.ErrDuplicateToken
		}
		delete(r.byToken, prev.Token)
		r.byToken[g.Token] = g.ID
	}

	// preservar el campo advisory que Update no toca
	g.LastAccessedAt = prev.LastAccessedAt

	r.byID[g.ID] = g
	return nil
}

func (r *GrantRepo) GetByID(ctx context.Context, id string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return grants.Grant{}, grants.ErrNotFound
	}
	return g, nil
}

func (r *GrantRepo) GetByToken(ctx context.Context, token string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok {
		return grants.Grant{}, grants.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *GrantRepo) ListByGallery(ctx context.Context, galleryID string) ([]grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grants.Grant, 0)
	for _, g := range r.byID {
		if g.GalleryID == galleryID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GrantRepo) TouchLastAccessed(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return grants.ErrNotFound
	}
	g.LastAccessedAt = &at
	r.byID[id] = g
	return nil
}
