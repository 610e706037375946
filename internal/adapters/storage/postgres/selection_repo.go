package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"studio-gallery/internal/domain/selection"
)

// SelectionRepo implementa el engine transaccional de selección.
//
// Todo el contrato de atomicidad vive en Toggle: lock de la fila del
// asset, update condicional del contador de la galería, flag y evento,
// en UNA transacción. El chequeo de quota es el update condicional del
// contador — nunca un count leído antes y comparado en la aplicación,
// que es la carrera clásica de lost-update.
type SelectionRepo struct{ db *DB }

func NewSelectionRepo(db *DB) *SelectionRepo { return &SelectionRepo{db: db} }

const (
	selAssetForUpdate = `SELECT is_selected FROM media_assets WHERE id=$1 AND gallery_id=$2 FOR UPDATE`

	// El WHERE con el límite hace el enforcement: 0 filas afectadas =
	// quota llena. $2 NULL = sin límite.
	incrSelected = `UPDATE galleries SET selected_count = selected_count + 1 WHERE id=$1 AND ($2::int IS NULL OR selected_count < $2)`

	// GREATEST por si el contador quedara torcido por data histórica;
	// nunca debería bajar de cero.
	decrSelected = `UPDATE galleries SET selected_count = GREATEST(selected_count - 1, 0) WHERE id=$1`

	updAssetFlag = `UPDATE media_assets SET is_selected=$3, updated_at=$4 WHERE id=$1 AND gallery_id=$2`

	insEvent = `INSERT INTO selection_events (id, grant_id, asset_id, became_selected, occurred_at) VALUES ($1,$2,$3,$4,$5)`
)

func (r *SelectionRepo) Toggle(ctx context.Context, in selection.ToggleInput) (res selection.ToggleResult, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return selection.ToggleResult{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	// Lock del asset: serializa toggles concurrentes sobre el mismo
	// asset y de paso verifica pertenencia a la galería del grant.
	var current bool
	if err = tx.QueryRow(ctx, selAssetForUpdate, in.AssetID, in.GalleryID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = selection.ErrAssetNotInGallery
		}
		return selection.ToggleResult{}, err
	}

	if current == in.Desired {
		// idempotente: ya está como se pidió, sin evento nuevo
		return selection.ToggleResult{Changed: false}, nil
	}

	if in.Desired {
		tag, execErr := tx.Exec(ctx, incrSelected, in.GalleryID, in.MaxSelections)
		if execErr != nil {
			err = execErr
			return selection.ToggleResult{}, err
		}
		if tag.RowsAffected() == 0 {
			err = selection.ErrQuotaExceeded
			return selection.ToggleResult{}, err
		}
	} else {
		// deselección: el quota jamás la bloquea
		if _, err = tx.Exec(ctx, decrSelected, in.GalleryID); err != nil {
			return selection.ToggleResult{}, err
		}
	}

	if _, err = tx.Exec(ctx, updAssetFlag, in.AssetID, in.GalleryID, in.Desired, in.OccurredAt); err != nil {
		return selection.ToggleResult{}, err
	}

	if _, err = tx.Exec(ctx, insEvent, in.EventID, in.GrantID, in.AssetID, in.Desired, in.OccurredAt); err != nil {
		return selection.ToggleResult{}, err
	}

	return selection.ToggleResult{Changed: true}, nil
}

func (r *SelectionRepo) SetComment(ctx context.Context, galleryID, assetID, comment string) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE media_assets SET comment = $3, updated_at = now()
		WHERE id = $1 AND gallery_id = $2
	`, assetID, galleryID, comment)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return selection.ErrAssetNotInGallery
	}
	return nil
}
