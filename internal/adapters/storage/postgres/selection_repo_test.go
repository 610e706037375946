package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"studio-gallery/internal/domain/selection"
)

func toggleInput(max *int, desired bool) selection.ToggleInput {
	return selection.ToggleInput{
		EventID:       "ev-1",
		GrantID:       "grant-1",
		GalleryID:     "gal-1",
		AssetID:       "asset-1",
		Desired:       desired,
		MaxSelections: max,
		OccurredAt:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestSelectionRepo_Toggle_Select_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	max := 10
	in := toggleInput(&max, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT is_selected FROM media_assets WHERE id=\$1 AND gallery_id=\$2 FOR UPDATE`).
		WithArgs(in.AssetID, in.GalleryID).
		WillReturnRows(pgxmock.NewRows([]string{"is_selected"}).AddRow(false))
	mock.ExpectExec(`UPDATE galleries SET selected_count = selected_count \+ 1`).
		WithArgs(in.GalleryID, in.MaxSelections).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE media_assets SET is_selected=\$3, updated_at=\$4`).
		WithArgs(in.AssetID, in.GalleryID, true, in.OccurredAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO selection_events`).
		WithArgs(in.EventID, in.GrantID, in.AssetID, true, in.OccurredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	res, err := r.Toggle(context.Background(), in)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepo_Toggle_QuotaExceeded(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	max := 2
	in := toggleInput(&max, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT is_selected FROM media_assets`).
		WithArgs(in.AssetID, in.GalleryID).
		WillReturnRows(pgxmock.NewRows([]string{"is_selected"}).AddRow(false))
	// 0 filas = contador ya en el límite: ni flag ni evento
	mock.ExpectExec(`UPDATE galleries SET selected_count = selected_count \+ 1`).
		WithArgs(in.GalleryID, in.MaxSelections).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := r.Toggle(context.Background(), in)
	require.ErrorIs(t, err, selection.ErrQuotaExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepo_Toggle_NoOp(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	in := toggleInput(nil, true)

	// ya seleccionado: commit sin updates ni evento
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT is_selected FROM media_assets`).
		WithArgs(in.AssetID, in.GalleryID).
		WillReturnRows(pgxmock.NewRows([]string{"is_selected"}).AddRow(true))
	mock.ExpectCommit()

	res, err := r.Toggle(context.Background(), in)
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepo_Toggle_Deselect_IgnoresQuota(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	max := 1
	in := toggleInput(&max, false)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT is_selected FROM media_assets`).
		WithArgs(in.AssetID, in.GalleryID).
		WillReturnRows(pgxmock.NewRows([]string{"is_selected"}).AddRow(true))
	mock.ExpectExec(`UPDATE galleries SET selected_count = GREATEST\(selected_count - 1, 0\)`).
		WithArgs(in.GalleryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE media_assets SET is_selected=\$3, updated_at=\$4`).
		WithArgs(in.AssetID, in.GalleryID, false, in.OccurredAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO selection_events`).
		WithArgs(in.EventID, in.GrantID, in.AssetID, false, in.OccurredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	res, err := r.Toggle(context.Background(), in)
	require.NoError(t, err)
	require.True(t, res.Changed)
}

func TestSelectionRepo_Toggle_AssetOutsideGallery(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	in := toggleInput(nil, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT is_selected FROM media_assets`).
		WithArgs(in.AssetID, in.GalleryID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := r.Toggle(context.Background(), in)
	require.ErrorIs(t, err, selection.ErrAssetNotInGallery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepo_SetComment_AssetMissing(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSelectionRepo(db)

	mock.ExpectExec(`UPDATE media_assets SET comment = \$3`).
		WithArgs("asset-9", "gal-1", "nota").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := r.SetComment(context.Background(), "gal-1", "asset-9", "nota")
	require.ErrorIs(t, err, selection.ErrAssetNotInGallery)
}
