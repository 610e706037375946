package memory

import (
	"context"
	"sort"
	"sync"

	"studio-gallery/internal/domain/galleries"
)

type GalleryRepo struct {
	mu        sync.RWMutex
	galleries map[string]galleries.Gallery
	assets    map[string]galleries.Asset
}

func NewGalleryRepo() *GalleryRepo {
	return &GalleryRepo{
		galleries: make(map[string]galleries.Gallery),
		assets:    make(map[string]galleries.Asset),
	}
}

func (r *GalleryRepo) GetGallery(ctx context.Context, id string) (galleries.Gallery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.galleries[id]
	if !ok {
		return galleries.Gallery{}, galleries.ErrNotFound
	}
	return g, nil
}

func (r *GalleryRepo) ListAssets(ctx context.Context, galleryID string) ([]galleries.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]galleries.Asset, 0)
	for _, a := range r.assets {
		if a.GalleryID == galleryID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutGallery / PutAsset son seeds: en memoria no hay ingesta, las carga
// el test (o el main en modo dev) directamente.

func (r *GalleryRepo) PutGallery(g galleries.Gallery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.galleries[g.ID] = g
}

func (r *GalleryRepo) PutAsset(a galleries.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[a.ID] = a
}
