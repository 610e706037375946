package galleries

import "time"

// ContentKind clasifica el asset. No afecta lógica; es para la UI.
// @Enum image, video, other
type ContentKind string

const (
	KindImage ContentKind = "image"
	KindVideo ContentKind = "video"
	KindOther ContentKind = "other"
)

// Gallery es la colección curada que se comparte con un cliente.
// Las galerías y sus assets los crea el resto del producto (ingesta,
// bookings); este core solo las lee y togglea selección.
type Gallery struct {
	ID          string
	OwnerUserID string
	Name        string

	// SelectedCount es el contador materializado de assets seleccionados.
	// Lo mantiene el engine de selección en la misma transacción que el
	// flag; acá es solo lectura.
	SelectedCount int

	CreatedAt time.Time
}

// Asset es una foto/video dentro de una galería.
type Asset struct {
	ID        string
	GalleryID string

	DisplayName string
	ContentKind ContentKind

	// StorageKey es opaco; los bytes viven atrás del URLSigner.
	StorageKey string

	// IsSelected es el único campo mutable que toca el engine de
	// selección. Nadie más escribe este flag: si se escribe por otro
	// lado, la cuenta del quota deja de cerrar.
	IsSelected bool

	// Comment es la anotación del cliente sobre el asset. Independiente
	// de la selección, no genera eventos.
	Comment string

	CreatedAt time.Time
	UpdatedAt time.Time
}
