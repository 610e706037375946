package selection

import "time"

// Event es una entrada del ledger de selección: una transición, un
// registro. Append-only: jamás se actualiza ni se borra. El estado
// "actual" vive materializado en el flag del asset; este log existe para
// auditoría, export y reconciliación — y los dos nunca pueden divergir.
type Event struct {
	ID      string
	GrantID string
	AssetID string

	// BecameSelected: true = el asset pasó a seleccionado,
	// false = dejó de estarlo.
	BecameSelected bool

	OccurredAt time.Time
}
