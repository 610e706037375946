package selection

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"studio-gallery/internal/domain/grants"
	"studio-gallery/internal/middleware"
)

// RegisterClientRoutes registra las operaciones del cliente sobre la
// galería compartida. Requiere GrantContext ya montado en el router.
func RegisterClientRoutes(r chi.Router, svc *Service) {
	r.Post("/assets/{assetID}/selection", toggleSelectionHandler(svc))
	r.Put("/assets/{assetID}/comment", attachCommentHandler(svc))
	r.Get("/events", replayForGrantHandler(svc))
}

// RegisterOwnerRoutes expone el export del ledger para el owner.
func RegisterOwnerRoutes(r chi.Router, svc *Service, grantsSvc *grants.Service) {
	r.Get("/grants/{grantID}/events", ownerReplayHandler(svc, grantsSvc))
}

type toggleRequest struct {
	Selected *bool `json:"selected"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

type eventResponse struct {
	ID             string    `json:"id"`
	GrantID        string    `json:"grant_id"`
	AssetID        string    `json:"asset_id"`
	BecameSelected bool      `json:"became_selected"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// toggleSelectionHandler marca/desmarca un asset para el grant actual.
// @Summary Seleccionar o deseleccionar un asset
// @Tags gallery
// @Router /gallery/assets/{assetID}/selection [post]
func toggleSelectionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vg, ok := grants.GetGrant(r.Context())
		if !ok {
			http.Error(w, "access denied", http.StatusUnauthorized)
			return
		}

		var req toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Selected == nil {
			http.Error(w, "body requiere {\"selected\": bool}", http.StatusBadRequest)
			return
		}

		err := svc.Toggle(r.Context(), vg, chi.URLParam(r, "assetID"), *req.Selected)
		if err != nil {
			writeSelectionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func attachCommentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vg, ok := grants.GetGrant(r.Context())
		if !ok {
			http.Error(w, "access denied", http.StatusUnauthorized)
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.AttachComment(r.Context(), vg, chi.URLParam(r, "assetID"), req.Comment)
		if err != nil {
			writeSelectionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func replayForGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vg, ok := grants.GetGrant(r.Context())
		if !ok {
			http.Error(w, "access denied", http.StatusUnauthorized)
			return
		}

		items, err := svc.Replay(r.Context(), vg.GrantID)
		if err != nil {
			writeSelectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(items))
	}
}

// ownerReplayHandler: mismo replay, pero autenticado como owner y por
// grant id. Funciona incluso con el grant desactivado o vencido — la
// historia queda consultable siempre.
func ownerReplayHandler(svc *Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")
		if _, err := grantsSvc.GetByID(r.Context(), grantID, claims.UserID); err != nil {
			if errors.Is(err, grants.ErrNotFound) || errors.Is(err, grants.ErrInvalidInput) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, err := svc.Replay(r.Context(), grantID)
		if err != nil {
			writeSelectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func writeSelectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAssetNotInGallery):
		http.Error(w, "asset not found", http.StatusNotFound)
	case errors.Is(err, ErrQuotaExceeded):
		// 409: resultado esperado, la UI lo maneja
		writeJSON(w, http.StatusConflict, errorBody{
			Error: "selection quota exceeded",
			Code:  "quota_exceeded",
		})
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEventResponses(items []Event) []eventResponse {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, eventResponse{
			ID:             e.ID,
			GrantID:        e.GrantID,
			AssetID:        e.AssetID,
			BecameSelected: e.BecameSelected,
			OccurredAt:     e.OccurredAt,
		})
	}
	return out
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no extraer helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
