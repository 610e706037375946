package grants

import "time"

// Grant es el link compartido: la capability que le damos al cliente
// para ver una galería y marcar su selección, acotada en el tiempo.
type Grant struct {
	ID string

	GalleryID   string
	OwnerUserID string // quien comparte (dueño del estudio)

	// Token es la credencial bearer. Inmutable salvo rotación explícita.
	Token string

	// Password opcional. Guardamos hash Argon2id + salt por grant,
	// nunca el plaintext.
	PasswordHash []byte
	PasswordSalt []byte

	// ExpiresAt es absoluto: en t >= ExpiresAt el grant no sirve más,
	// sin importar IsActive. No es sliding.
	ExpiresAt time.Time

	// IsActive es el kill-switch del owner, independiente del expiry.
	IsActive bool

	// MaxSelections: tope de assets seleccionados a la vez.
	// nil = sin límite. Cero no es un valor válido (usar nil).
	MaxSelections *int

	// ClientLabel es metadata de display ("Boda García", etc).
	ClientLabel string

	CreatedAt time.Time
	UpdatedAt time.Time

	// LastAccessedAt es observacional, best-effort. No es seguridad.
	LastAccessedAt *time.Time
}

// HasPassword indica si presentar el token solo no alcanza.
func (g Grant) HasPassword() bool {
	return len(g.PasswordHash) > 0
}

// ValidatedGrant es la única forma en que los servicios de selección
// y galería aceptan la autoridad de un cliente. Jamás un token crudo:
// así la validación ocurre en todos los caminos, sí o sí.
type ValidatedGrant struct {
	GrantID       string
	GalleryID     string
	MaxSelections *int
}
