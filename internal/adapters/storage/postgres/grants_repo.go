package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"studio-gallery/internal/domain/grants"
)

type GrantsRepo struct{ db *DB }

func NewGrantsRepo(db *DB) *GrantsRepo { return &GrantsRepo{db: db} }

const grantColumns = `
	id, gallery_id, owner_user_id, token,
	password_hash, password_salt,
	expires_at, is_active, max_selections, client_label,
	created_at, updated_at, last_accessed_at`

func (r *GrantsRepo) Create(ctx context.Context, g grants.Grant) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO access_grants (
			id, gallery_id, owner_user_id, token,
			password_hash, password_salt,
			expires_at, is_active, max_selections, client_label,
			created_at, updated_at, last_accessed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		g.ID,
		g.GalleryID,
		g.OwnerUserID,
		g.Token,
		g.PasswordHash,
		g.PasswordSalt,
		g.ExpiresAt,
		g.IsActive,
		g.MaxSelections,
		g.ClientLabel,
		g.CreatedAt,
		g.UpdatedAt,
		g.LastAccessedAt,
	)
	if isUniqueViolation(err) {
		return grants.ErrDuplicateToken
	}
	return err
}

func (r *GrantsRepo) Update(ctx context.Context, g grants.Grant) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE access_grants
		SET
			token = $2,
			password_hash = $3,
			password_salt = $4,
			expires_at = $5,
			is_active = $6,
			max_selections = $7,
			client_label = $8,
			updated_at = $9
		WHERE id = $1
	`,
		g.ID,
		g.Token,
		g.PasswordHash,
		g.PasswordSalt,
		g.ExpiresAt,
		g.IsActive,
		g.MaxSelections,
		g.ClientLabel,
		g.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return grants.ErrDuplicateToken
	}
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return grants.ErrNotFound
	}
	return nil
}

func (r *GrantsRepo) GetByID(ctx context.Context, id string) (grants.Grant, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT`+grantColumns+`
		FROM access_grants
		WHERE id = $1
	`, id)
	return scanGrant(row)
}

func (r *GrantsRepo) GetByToken(ctx context.Context, token string) (grants.Grant, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT`+grantColumns+`
		FROM access_grants
		WHERE token = $1
	`, token)
	return scanGrant(row)
}

func (r *GrantsRepo) ListByGallery(ctx context.Context, galleryID string) ([]grants.Grant, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+grantColumns+`
		FROM access_grants
		WHERE gallery_id = $1
		ORDER BY created_at ASC
	`, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]grants.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GrantsRepo) TouchLastAccessed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE access_grants SET last_accessed_at = $2 WHERE id = $1
	`, id, at)
	return err
}

func scanGrant(row pgx.Row) (grants.Grant, error) {
	var g grants.Grant
	err := row.Scan(
		&g.ID,
		&g.GalleryID,
		&g.OwnerUserID,
		&g.Token,
		&g.PasswordHash,
		&g.PasswordSalt,
		&g.ExpiresAt,
		&g.IsActive,
		&g.MaxSelections,
		&g.ClientLabel,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.LastAccessedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return grants.Grant{}, grants.ErrNotFound
	}
	if err != nil {
		return grants.Grant{}, err
	}
	return g, nil
}
