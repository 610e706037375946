package grants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"studio-gallery/internal/crypto"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPolicy  = errors.New("invalid policy")
	ErrIssuanceFailed = errors.New("issuance failed")
	ErrNotFound       = errors.New("not found")

	// Taxonomía de validación del link. El middleware decide qué tan
	// distinguibles son hacia afuera (los tres primeros, nada).
	ErrInactive          = errors.New("grant inactive")
	ErrExpired           = errors.New("grant expired")
	ErrPasswordRequired  = errors.New("password required")
	ErrPasswordIncorrect = errors.New("password incorrect")

	// ErrDuplicateToken lo devuelven los repos ante el unique de token.
	// Colisión de 256 bits: casi imposible, pero el retry es barato.
	ErrDuplicateToken = errors.New("duplicate token")
)

// tokenAttempts acota el retry de generación ante colisión de unique.
const tokenAttempts = 5

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// IssueInput es la policy del link nuevo.
type IssueInput struct {
	// ExpiryDuration define expires_at = now + duration. Obligatorio y positivo.
	ExpiryDuration time.Duration

	// Password opcional en plaintext; se hashea antes de guardar.
	Password string

	// MaxSelections nil = ilimitado. Cero o negativo => ErrInvalidPolicy.
	MaxSelections *int

	ClientLabel string
}

// Issue crea un grant nuevo para la galería. No genera evento de
// auditoría: emitir un link no es un evento de selección.
func (s *Service) Issue(ctx context.Context, galleryID, ownerUserID string, in IssueInput) (Grant, error) {
	galleryID = strings.TrimSpace(galleryID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if galleryID == "" || ownerUserID == "" {
		return Grant{}, ErrInvalidInput
	}
	if in.ExpiryDuration <= 0 {
		return Grant{}, ErrInvalidPolicy
	}
	if in.MaxSelections != nil && *in.MaxSelections <= 0 {
		return Grant{}, ErrInvalidPolicy
	}

	now := s.now()

	var pwHash, pwSalt []byte
	if in.Password != "" {
		salt, err := crypto.RandBytes(crypto.SaltLen)
		if err != nil {
			return Grant{}, err
		}
		pwSalt = salt
		pwHash = crypto.HashPassword([]byte(in.Password), salt)
	}

	g := Grant{
		ID:            uuid.NewString(),
		GalleryID:     galleryID,
		OwnerUserID:   ownerUserID,
		PasswordHash:  pwHash,
		PasswordSalt:  pwSalt,
		ExpiresAt:     now.Add(in.ExpiryDuration),
		IsActive:      true,
		MaxSelections: in.MaxSelections,
		ClientLabel:   strings.TrimSpace(in.ClientLabel),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for i := 0; i < tokenAttempts; i++ {
		token, err := crypto.NewToken()
		if err != nil {
			return Grant{}, err
		}
		g.Token = token

		err = s.repo.Create(ctx, g)
		if err == nil {
			return g, nil
		}
		if errors.Is(err, ErrDuplicateToken) {
			continue
		}
		return Grant{}, err
	}
	return Grant{}, ErrIssuanceFailed
}

// RotateToken reemplaza el token en el acto: el viejo muere ya mismo,
// la historia de selección queda. Revocación sin perder nada.
func (s *Service) RotateToken(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	g, err := s.getOwned(ctx, grantID, ownerUserID)
	if err != nil {
		return Grant{}, err
	}

	now := s.now()
	for i := 0; i < tokenAttempts; i++ {
		token, tErr := crypto.NewToken()
		if tErr != nil {
			return Grant{}, tErr
		}
		g.Token = token
		g.UpdatedAt = now

		err = s.repo.Update(ctx, g)
		if err == nil {
			return g, nil
		}
		if errors.Is(err, ErrDuplicateToken) {
			continue
		}
		return Grant{}, err
	}
	return Grant{}, ErrIssuanceFailed
}

// SetActive prende/apaga el grant. Idempotente: pedir el estado en el
// que ya está no es error, es no-op.
func (s *Service) SetActive(ctx context.Context, grantID, ownerUserID string, active bool) (Grant, error) {
	g, err := s.getOwned(ctx, grantID, ownerUserID)
	if err != nil {
		return Grant{}, err
	}

	if g.IsActive == active {
		return g, nil
	}

	g.IsActive = active
	g.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// Revoke es el tombstone: inactivo + expiry en el pasado. No borramos
// filas mientras haya selection_events que las referencien.
func (s *Service) Revoke(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	g, err := s.getOwned(ctx, grantID, ownerUserID)
	if err != nil {
		return Grant{}, err
	}

	now := s.now()
	if !g.IsActive && !now.Before(g.ExpiresAt) {
		// ya es tombstone
		return g, nil
	}

	g.IsActive = false
	if g.ExpiresAt.After(now) {
		g.ExpiresAt = now
	}
	g.UpdatedAt = now
	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	return s.getOwned(ctx, grantID, ownerUserID)
}

func (s *Service) ListByGallery(ctx context.Context, galleryID string) ([]Grant, error) {
	galleryID = strings.TrimSpace(galleryID)
	if galleryID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByGallery(ctx, galleryID)
}

// Validate decide si un request de cliente puede seguir. Orden estricto:
// lookup -> activo -> expiry -> password. Falla rápido y no filtra más
// información que la taxonomía (un token inexistente y uno inactivo se
// ven idénticos desde afuera).
func (s *Service) Validate(ctx context.Context, token, password string) (ValidatedGrant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ValidatedGrant{}, ErrNotFound
	}

	g, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		// ErrNotFound pasa tal cual; cualquier otra cosa es storage.
		return ValidatedGrant{}, err
	}

	if !g.IsActive {
		return ValidatedGrant{}, ErrInactive
	}

	now := s.now()
	if !now.Before(g.ExpiresAt) {
		// expiry absoluto: en t == ExpiresAt ya está vencido
		return ValidatedGrant{}, ErrExpired
	}

	if g.HasPassword() {
		if password == "" {
			return ValidatedGrant{}, ErrPasswordRequired
		}
		if !crypto.VerifyPassword([]byte(password), g.PasswordSalt, g.PasswordHash) {
			return ValidatedGrant{}, ErrPasswordIncorrect
		}
	}

	// Observacional: si no se pudo persistir, la validación igual vale.
	_ = s.repo.TouchLastAccessed(ctx, g.ID, now)

	return ValidatedGrant{
		GrantID:       g.ID,
		GalleryID:     g.GalleryID,
		MaxSelections: g.MaxSelections,
	}, nil
}

// getOwned busca por id y chequea ownership. Un grant ajeno se reporta
// como not found, no como forbidden: no confirmamos existencia.
func (s *Service) getOwned(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	grantID = strings.TrimSpace(grantID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if grantID == "" || ownerUserID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return Grant{}, err
	}
	if g.OwnerUserID != ownerUserID {
		return Grant{}, ErrNotFound
	}
	return g, nil
}
