package grants

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Grant
	byToken map[string]string

	// tokens que van a chocar con el unique al crear/actualizar
	collideNext int

	touchCalls int
	touchErr   error
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:    map[string]Grant{},
		byToken: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if r.collideNext > 0 {
		r.collideNext--
		return ErrDuplicateToken
	}
	if _, ok := r.byToken[g.Token]; ok {
		return ErrDuplicateToken
	}
	if _, ok := r.byID[g.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[g.ID] = g
	r.byToken[g.Token] = g.ID
	return nil
}

func (r *testRepo) Update(ctx context.Context, g Grant) error {
	prev, ok := r.byID[g.ID]
	if !ok {
		return ErrNotFound
	}
	if r.collideNext > 0 {
		r.collideNext--
		return ErrDuplicateToken
	}
	if g.Token != prev.Token {
		delete(r.byToken, prev.Token)
		r.byToken[g.Token] = g.ID
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	g, ok := r.byID[id]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *testRepo) GetByToken(ctx context.Context, token string) (Grant, error) {
	id, ok := r.byToken[token]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) ListByGallery(ctx context.Context, galleryID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.GalleryID == galleryID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) TouchLastAccessed(ctx context.Context, id string, at time.Time) error {
	r.touchCalls++
	if r.touchErr != nil {
		return r.touchErr
	}
	g, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	g.LastAccessedAt = &at
	r.byID[id] = g
	return nil
}

func intPtr(n int) *int { return &n }

// -------------------------
// Issue
// -------------------------

func TestService_Issue_OK(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, err := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{
		ExpiryDuration: 7 * 24 * time.Hour,
		MaxSelections:  intPtr(30),
		ClientLabel:    "Boda García",
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if g.Token == "" {
		t.Fatalf("expected token")
	}
	if !g.IsActive {
		t.Fatalf("expected active grant")
	}
	if g.ExpiresAt != now.Add(7*24*time.Hour) {
		t.Fatalf("expires_at = now + duration, got %v", g.ExpiresAt)
	}
	if g.HasPassword() {
		t.Fatalf("sin password => sin hash")
	}
	if g.MaxSelections == nil || *g.MaxSelections != 30 {
		t.Fatalf("max_selections perdido: %#v", g.MaxSelections)
	}
}

func TestService_Issue_HashesPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, err := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{
		ExpiryDuration: time.Hour,
		Password:       "secreto",
	})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !g.HasPassword() {
		t.Fatalf("expected password hash")
	}
	if len(g.PasswordSalt) == 0 {
		t.Fatalf("expected salt por grant")
	}
	// jamás el plaintext
	if string(g.PasswordHash) == "secreto" {
		t.Fatalf("password guardado en plano")
	}
}

func TestService_Issue_InvalidPolicy(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	cases := []IssueInput{
		{ExpiryDuration: 0},
		{ExpiryDuration: -time.Hour},
		{ExpiryDuration: time.Hour, MaxSelections: intPtr(0)},
		{ExpiryDuration: time.Hour, MaxSelections: intPtr(-3)},
	}
	for i, in := range cases {
		if _, err := svc.Issue(context.Background(), "gal-1", "owner-1", in); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("case %d: expected ErrInvalidPolicy, got %v", i, err)
		}
	}
}

func TestService_Issue_RetriesOnTokenCollision(t *testing.T) {
	repo := newTestRepo()
	repo.collideNext = 2 // dos colisiones, después pasa
	svc := NewService(repo)

	g, err := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})
	if err != nil {
		t.Fatalf("Issue con colisiones recuperables: %v", err)
	}
	if g.Token == "" {
		t.Fatalf("expected token tras retry")
	}
}

func TestService_Issue_GivesUpAfterBoundedRetries(t *testing.T) {
	repo := newTestRepo()
	repo.collideNext = tokenAttempts // todas chocan
	svc := NewService(repo)

	_, err := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})
	if !errors.Is(err, ErrIssuanceFailed) {
		t.Fatalf("expected ErrIssuanceFailed, got %v", err)
	}
}

// -------------------------
// Rotate / SetActive / Revoke
// -------------------------

func TestService_RotateToken_InvalidatesOld(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, err := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	oldToken := g.Token

	rotated, err := svc.RotateToken(context.Background(), g.ID, "owner-1")
	if err != nil {
		t.Fatalf("RotateToken error: %v", err)
	}
	if rotated.Token == oldToken {
		t.Fatalf("token no rotó")
	}

	if _, err := svc.Validate(context.Background(), oldToken, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("token viejo debería ser NotFound, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), rotated.Token, ""); err != nil {
		t.Fatalf("token nuevo debería validar: %v", err)
	}
}

func TestService_RotateToken_ForeignOwnerLooksLikeNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})

	if _, err := svc.RotateToken(context.Background(), g.ID, "owner-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("grant ajeno debe reportarse not found, got %v", err)
	}
}

func TestService_SetActive_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})

	// ya está activo: no-op, no error
	same, err := svc.SetActive(context.Background(), g.ID, "owner-1", true)
	if err != nil {
		t.Fatalf("SetActive no-op error: %v", err)
	}
	if same.UpdatedAt != g.UpdatedAt {
		t.Fatalf("no-op no debería tocar updated_at")
	}

	off, err := svc.SetActive(context.Background(), g.ID, "owner-1", false)
	if err != nil {
		t.Fatalf("SetActive(false) error: %v", err)
	}
	if off.IsActive {
		t.Fatalf("expected inactive")
	}

	on, err := svc.SetActive(context.Background(), g.ID, "owner-1", true)
	if err != nil {
		t.Fatalf("SetActive(true) error: %v", err)
	}
	if !on.IsActive {
		t.Fatalf("expected reactivated")
	}
}

func TestService_Revoke_Tombstone(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: 24 * time.Hour})

	revoked, err := svc.Revoke(context.Background(), g.ID, "owner-1")
	if err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if revoked.IsActive {
		t.Fatalf("tombstone debe quedar inactivo")
	}
	if revoked.ExpiresAt.After(now) {
		t.Fatalf("tombstone debe quedar vencido")
	}

	// idempotente
	again, err := svc.Revoke(context.Background(), g.ID, "owner-1")
	if err != nil {
		t.Fatalf("Revoke #2 error: %v", err)
	}
	if again.UpdatedAt != revoked.UpdatedAt {
		t.Fatalf("re-revocar no debería tocar nada")
	}
}

// -------------------------
// Validate
// -------------------------

func TestService_Validate_Taxonomy(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{
		ExpiryDuration: time.Hour,
		MaxSelections:  intPtr(5),
	})

	// ok
	vg, err := svc.Validate(context.Background(), g.Token, "")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if vg.GrantID != g.ID || vg.GalleryID != "gal-1" {
		t.Fatalf("ValidatedGrant mal armado: %#v", vg)
	}
	if vg.MaxSelections == nil || *vg.MaxSelections != 5 {
		t.Fatalf("ValidatedGrant debe cargar el quota")
	}

	// token inexistente
	if _, err := svc.Validate(context.Background(), "no-such-token", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// inactivo
	if _, err := svc.SetActive(context.Background(), g.ID, "owner-1", false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := svc.Validate(context.Background(), g.Token, ""); !errors.Is(err, ErrInactive) {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
	if _, err := svc.SetActive(context.Background(), g.ID, "owner-1", true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	// expiry absoluto: en t == expires_at ya está vencido, aún activo
	svc.now = func() time.Time { return g.ExpiresAt }
	if _, err := svc.Validate(context.Background(), g.Token, ""); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired en t == expires_at, got %v", err)
	}
	svc.now = func() time.Time { return g.ExpiresAt.Add(-time.Nanosecond) }
	if _, err := svc.Validate(context.Background(), g.Token, ""); err != nil {
		t.Fatalf("justo antes de expires_at debe validar: %v", err)
	}
}

func TestService_Validate_PasswordFlow(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{
		ExpiryDuration: time.Hour,
		Password:       "correcto",
	})

	if _, err := svc.Validate(context.Background(), g.Token, ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("sin password => ErrPasswordRequired, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), g.Token, "incorrecto"); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("password malo => ErrPasswordIncorrect, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), g.Token, "correcto"); err != nil {
		t.Fatalf("password bueno debe validar: %v", err)
	}
}

func TestService_Validate_TouchIsBestEffort(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, _ := svc.Issue(context.Background(), "gal-1", "owner-1", IssueInput{ExpiryDuration: time.Hour})

	repo.touchErr = errors.New("storage flaky")
	if _, err := svc.Validate(context.Background(), g.Token, ""); err != nil {
		t.Fatalf("fallar el touch no puede romper la validación: %v", err)
	}
	if repo.touchCalls != 1 {
		t.Fatalf("expected touch call")
	}

	repo.touchErr = nil
	if _, err := svc.Validate(context.Background(), g.Token, ""); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), g.ID)
	if stored.LastAccessedAt == nil {
		t.Fatalf("last_accessed_at debería quedar seteado")
	}
}

func TestService_Validate_EmptyToken(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	// token vacío ni siquiera llega al repo
	if _, err := svc.Validate(context.Background(), "   ", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("token vacío => ErrNotFound, got %v", err)
	}
	if repo.touchCalls != 0 {
		t.Fatalf("no debería tocar el repo")
	}
}
