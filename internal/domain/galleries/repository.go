package galleries

import "context"

// Repository es el camino de lectura de galerías y assets.
// Los adapters devuelven ErrNotFound de este paquete.
type Repository interface {
	GetGallery(ctx context.Context, id string) (Gallery, error)
	ListAssets(ctx context.Context, galleryID string) ([]Asset, error)
}
