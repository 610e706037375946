package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"studio-gallery/internal/domain/galleries"
)

type GalleriesRepo struct{ db *DB }

func NewGalleriesRepo(db *DB) *GalleriesRepo { return &GalleriesRepo{db: db} }

func (r *GalleriesRepo) GetGallery(ctx context.Context, id string) (galleries.Gallery, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT id, owner_user_id, name, selected_count, created_at
		FROM galleries
		WHERE id = $1
	`, id)

	var g galleries.Gallery
	err := row.Scan(&g.ID, &g.OwnerUserID, &g.Name, &g.SelectedCount, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return galleries.Gallery{}, galleries.ErrNotFound
	}
	if err != nil {
		return galleries.Gallery{}, err
	}
	return g, nil
}

func (r *GalleriesRepo) ListAssets(ctx context.Context, galleryID string) ([]galleries.Asset, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, gallery_id, display_name, content_kind, storage_key,
		       is_selected, comment, created_at, updated_at
		FROM media_assets
		WHERE gallery_id = $1
		ORDER BY created_at ASC, id ASC
	`, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]galleries.Asset, 0)
	for rows.Next() {
		var a galleries.Asset
		var kind string
		if err := rows.Scan(
			&a.ID,
			&a.GalleryID,
			&a.DisplayName,
			&kind,
			&a.StorageKey,
			&a.IsSelected,
			&a.Comment,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.ContentKind = galleries.ContentKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}
