package selection

import (
	"context"
	"time"
)

// ToggleInput lleva todo lo que el storage necesita para resolver un
// toggle en una sola unidad atómica. El evento viene pre-generado
// (id + timestamp) para que el insert ocurra dentro de la misma
// transacción que el flag.
type ToggleInput struct {
	EventID   string
	GrantID   string
	GalleryID string
	AssetID   string

	Desired bool

	// MaxSelections nil = sin límite. El chequeo de quota lo hace el
	// storage como update condicional, no este paquete: un read-then-write
	// en memoria acá arriba es exactamente la carrera que queremos evitar.
	MaxSelections *int

	OccurredAt time.Time
}

type ToggleResult struct {
	// Changed false = el asset ya estaba en el estado pedido; no-op,
	// sin evento nuevo.
	Changed bool
}

// Repository es el engine transaccional de selección. Contrato:
//
//   - Toggle es UNA transacción: lock del asset, update condicional del
//     contador de la galería, update del flag y append del evento. O
//     pasa todo o no pasa nada; flag y log no pueden divergir ni con un
//     crash en el medio.
//   - Dos Toggle concurrentes sobre la misma galería jamás pueden
//     superar MaxSelections entre los dos.
//   - Deselección nunca se bloquea por quota.
//
// Sentinels: ErrAssetNotInGallery, ErrQuotaExceeded. Otro error =
// storage no disponible, se propaga sin retry.
type Repository interface {
	Toggle(ctx context.Context, in ToggleInput) (ToggleResult, error)

	// SetComment anota el asset. No toca selección ni genera eventos.
	SetComment(ctx context.Context, galleryID, assetID, comment string) error
}

// EventRepository es el camino de lectura del ledger.
type EventRepository interface {
	// ListByGrant devuelve los eventos del grant en orden de ocurrencia.
	ListByGrant(ctx context.Context, grantID string) ([]Event, error)
}
