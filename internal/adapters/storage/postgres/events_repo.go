package postgres

import (
	"context"

	"studio-gallery/internal/domain/selection"
)

// EventsRepo es lectura pura del ledger. Los inserts ocurren únicamente
// dentro de la transacción de SelectionRepo.Toggle; no hay camino de
// escritura suelto a propósito.
type EventsRepo struct{ db *DB }

func NewEventsRepo(db *DB) *EventsRepo { return &EventsRepo{db: db} }

func (r *EventsRepo) ListByGrant(ctx context.Context, grantID string) ([]selection.Event, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, grant_id, asset_id, became_selected, occurred_at
		FROM selection_events
		WHERE grant_id = $1
		ORDER BY occurred_at ASC, id ASC
	`, grantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]selection.Event, 0)
	for rows.Next() {
		var e selection.Event
		if err := rows.Scan(&e.ID, &e.GrantID, &e.AssetID, &e.BecameSelected, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
