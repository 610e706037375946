package selection

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"studio-gallery/internal/domain/grants"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssetNotInGallery: el asset no pertenece a la galería del grant.
	ErrAssetNotInGallery = errors.New("asset not in gallery")

	// ErrQuotaExceeded es un resultado esperado y frecuente, no una
	// falla: la UI lo muestra y el cliente deselecciona algo primero.
	ErrQuotaExceeded = errors.New("selection quota exceeded")
)

// Service es el engine de selección. Solo acepta ValidatedGrant: si un
// caller tiene uno, ya pasó por Validate. Acá no se revalida el token.
type Service struct {
	repo   Repository
	events EventRepository
	now    func() time.Time
}

func NewService(repo Repository, events EventRepository) *Service {
	return &Service{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// Toggle lleva el asset al estado pedido.
//
// Idempotente por definición: pedir el estado en el que ya está es no-op
// exitoso sin evento nuevo. Eso hace seguro el retry ante timeout del
// caller (revalidar y repetir el mismo desired no duplica nada).
func (s *Service) Toggle(ctx context.Context, vg grants.ValidatedGrant, assetID string, desired bool) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return ErrInvalidInput
	}

	_, err := s.repo.Toggle(ctx, ToggleInput{
		EventID:       uuid.NewString(),
		GrantID:       vg.GrantID,
		GalleryID:     vg.GalleryID,
		AssetID:       assetID,
		Desired:       desired,
		MaxSelections: vg.MaxSelections,
		OccurredAt:    s.now(),
	})
	return err
}

// AttachComment anota el asset. Siempre permitido, con o sin quota
// llena; los comentarios no son estado de selección y no van al ledger.
func (s *Service) AttachComment(ctx context.Context, vg grants.ValidatedGrant, assetID, text string) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return ErrInvalidInput
	}
	return s.repo.SetComment(ctx, vg.GalleryID, assetID, strings.TrimSpace(text))
}

// Replay devuelve el ledger del grant en orden. Reproducirlo da el
// estado de selección punto-a-punto; el sistema de record para "ahora"
// sigue siendo el flag materializado.
func (s *Service) Replay(ctx context.Context, grantID string) ([]Event, error) {
	grantID = strings.TrimSpace(grantID)
	if grantID == "" {
		return nil, ErrInvalidInput
	}
	return s.events.ListByGrant(ctx, grantID)
}
