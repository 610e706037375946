package memory

import (
	"context"
	"errors"
	"time"

	"studio-gallery/internal/domain/selection"
)

// SelectionRepo implementa el engine de selección sobre los stores en
// memoria. La sección crítica quota+flag+evento se serializa con el
// mutex del GalleryRepo: equivalente in-process de la transacción con
// lock de fila que hace el adapter de postgres.
type SelectionRepo struct {
	galleries *GalleryRepo
	events    *EventRepo
}

func NewSelectionRepo(galleries *GalleryRepo, events *EventRepo) *SelectionRepo {
	return &SelectionRepo{galleries: galleries, events: events}
}

func (r *SelectionRepo) Toggle(ctx context.Context, in selection.ToggleInput) (selection.ToggleResult, error) {
	r.galleries.mu.Lock()
	defer r.galleries.mu.Unlock()

	a, ok := r.galleries.assets[in.AssetID]
	if !ok || a.GalleryID != in.GalleryID {
		return selection.ToggleResult{}, selection.ErrAssetNotInGallery
	}

	if a.IsSelected == in.Desired {
		// idempotente: sin cambio, sin evento
		return selection.ToggleResult{Changed: false}, nil
	}

	gal, ok := r.galleries.galleries[in.GalleryID]
	if !ok {
		return selection.ToggleResult{}, errors.New("gallery row missing for asset")
	}

	if in.Desired {
		if in.MaxSelections != nil && gal.SelectedCount >= *in.MaxSelections {
			return selection.ToggleResult{}, selection.ErrQuotaExceeded
		}
		gal.SelectedCount++
	} else {
		// deselección: nunca bloqueada por quota
		if gal.SelectedCount > 0 {
			gal.SelectedCount--
		}
	}

	a.IsSelected = in.Desired
	a.UpdatedAt = in.OccurredAt
	r.galleries.assets[in.AssetID] = a
	r.galleries.galleries[in.GalleryID] = gal

	// El append ocurre dentro de la sección crítica: flag y ledger no
	// pueden divergir ni ante toggles concurrentes.
	r.events.append(selection.Event{
		ID:             in.EventID,
		GrantID:        in.GrantID,
		AssetID:        in.AssetID,
		BecameSelected: in.Desired,
		OccurredAt:     in.OccurredAt,
	})

	return selection.ToggleResult{Changed: true}, nil
}

func (r *SelectionRepo) SetComment(ctx context.Context, galleryID, assetID, comment string) error {
	r.galleries.mu.Lock()
	defer r.galleries.mu.Unlock()

	a, ok := r.galleries.assets[assetID]
	if !ok || a.GalleryID != galleryID {
		return selection.ErrAssetNotInGallery
	}

	a.Comment = comment
	a.UpdatedAt = time.Now()
	r.galleries.assets[assetID] = a
	return nil
}
