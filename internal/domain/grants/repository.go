package grants

import (
	"context"
	"time"
)

// Repository persiste grants. Los adapters devuelven los sentinels de
// este paquete (ErrNotFound, ErrDuplicateToken) para mapeo estable;
// cualquier otro error es storage no disponible y se propaga tal cual.
type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, id string) (Grant, error)
	GetByToken(ctx context.Context, token string) (Grant, error)
	ListByGallery(ctx context.Context, galleryID string) ([]Grant, error)

	// TouchLastAccessed actualiza solo last_accessed_at. Best-effort:
	// el caller puede ignorar el error sin romper nada.
	TouchLastAccessed(ctx context.Context, id string, at time.Time) error
}
