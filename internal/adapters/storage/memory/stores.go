// Package memory implementa los repositorios en memoria, para modo dev
// y tests. Mismo contrato que postgres, incluida la atomicidad del
// toggle (acá, a fuerza de mutex por store).
package memory

// Stores agrupa los repos ya cableados entre sí. El repo de selección
// comparte estado con el de galerías (flags) y el de eventos (ledger),
// así que se construyen juntos.
type Stores struct {
	Grants    *GrantRepo
	Galleries *GalleryRepo
	Events    *EventRepo
	Selection *SelectionRepo
}

func NewStores() *Stores {
	gal := NewGalleryRepo()
	ev := NewEventRepo()
	return &Stores{
		Grants:    NewGrantRepo(),
		Galleries: gal,
		Events:    ev,
		Selection: NewSelectionRepo(gal, ev),
	}
}
