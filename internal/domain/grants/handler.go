package grants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"studio-gallery/internal/middleware"
	"studio-gallery/internal/ports/auth"
)

// GalleryOwnerLookup evita importar el paquete galleries (rompe ciclos).
type GalleryOwnerLookup interface {
	OwnerOf(ctx context.Context, galleryID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, galleryOwners GalleryOwnerLookup) {
	// Owner actions scoped by gallery
	r.Route("/galleries/{galleryID}/grants", func(gr chi.Router) {
		gr.Post("/", issueGrantHandler(svc, galleryOwners))
		gr.Get("/", listGrantsByGalleryHandler(svc, galleryOwners))
	})

	// Owner actions scoped by grant id
	r.Route("/grants/{grantID}", func(gr chi.Router) {
		gr.Get("/", getGrantHandler(svc))
		gr.Post("/rotate", rotateTokenHandler(svc))
		gr.Post("/active", setActiveHandler(svc))
		gr.Post("/revoke", revokeGrantHandler(svc))
	})
}

type issueGrantRequest struct {
	// ExpiresIn en formato time.ParseDuration ("72h", "168h", ...).
	ExpiresIn     string `json:"expires_in"`
	Password      string `json:"password,omitempty"`
	MaxSelections *int   `json:"max_selections,omitempty"`
	ClientLabel   string `json:"client_label,omitempty"`
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

type grantResponse struct {
	ID            string     `json:"id"`
	GalleryID     string     `json:"gallery_id"`
	Token         string     `json:"token"`
	HasPassword   bool       `json:"has_password"`
	ExpiresAt     time.Time  `json:"expires_at"`
	IsActive      bool       `json:"is_active"`
	MaxSelections *int       `json:"max_selections,omitempty"`
	ClientLabel   string     `json:"client_label,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastAccessed  *time.Time `json:"last_accessed_at,omitempty"`
}

// issueGrantHandler crea un link compartido para una galería.
// @Summary Emitir link de galería
// @Tags grants
// @Router /galleries/{galleryID}/grants [post]
func issueGrantHandler(svc *Service, galleryOwners GalleryOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireOwner(w, r, galleryOwners)
		if !ok {
			return
		}

		var req issueGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dur, err := time.ParseDuration(strings.TrimSpace(req.ExpiresIn))
		if err != nil {
			http.Error(w, "expires_in inválido (formato de time.ParseDuration)", http.StatusBadRequest)
			return
		}

		g, err := svc.Issue(r.Context(), chi.URLParam(r, "galleryID"), claims.UserID, IssueInput{
			ExpiryDuration: dur,
			Password:       req.Password,
			MaxSelections:  req.MaxSelections,
			ClientLabel:    req.ClientLabel,
		})
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func listGrantsByGalleryHandler(svc *Service, galleryOwners GalleryOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := requireOwner(w, r, galleryOwners)
		if !ok {
			return
		}

		items, err := svc.ListByGallery(r.Context(), chi.URLParam(r, "galleryID"))
		if err != nil {
			writeGrantError(w, err)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		g, err := svc.GetByID(r.Context(), chi.URLParam(r, "grantID"), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

// rotateTokenHandler reemplaza el token del grant; el link viejo muere.
// @Summary Rotar token de un link
// @Tags grants
// @Router /grants/{grantID}/rotate [post]
func rotateTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		g, err := svc.RotateToken(r.Context(), chi.URLParam(r, "grantID"), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func setActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req setActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
			http.Error(w, "body requiere {\"active\": bool}", http.StatusBadRequest)
			return
		}

		g, err := svc.SetActive(r.Context(), chi.URLParam(r, "grantID"), claims.UserID, *req.Active)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func revokeGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		g, err := svc.Revoke(r.Context(), chi.URLParam(r, "grantID"), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, found := middleware.GetClaims(r.Context())
	if !found || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

// requireOwner exige claims + ownership de la galería del path.
func requireOwner(w http.ResponseWriter, r *http.Request, galleryOwners GalleryOwnerLookup) (auth.Claims, bool) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return auth.Claims{}, false
	}

	galleryID := chi.URLParam(r, "galleryID")
	ownerID, err := galleryOwners.OwnerOf(r.Context(), galleryID)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		http.Error(w, "gallery not found", http.StatusNotFound)
		return auth.Claims{}, false
	}
	if ownerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

func writeGrantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPolicy):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		// incluye ErrIssuanceFailed y storage caído
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:            g.ID,
		GalleryID:     g.GalleryID,
		Token:         g.Token,
		HasPassword:   g.HasPassword(),
		ExpiresAt:     g.ExpiresAt,
		IsActive:      g.IsActive,
		MaxSelections: g.MaxSelections,
		ClientLabel:   g.ClientLabel,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		LastAccessed:  g.LastAccessedAt,
	}
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no extraer helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
