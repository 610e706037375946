package galleries

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studio-gallery/internal/domain/grants"
)

// RegisterClientRoutes registra la vista de galería del cliente.
// Asume que el router ya montó el GrantContext middleware: acá solo
// leemos el ValidatedGrant del contexto.
func RegisterClientRoutes(r chi.Router, svc *Service) {
	r.Get("/", viewGalleryHandler(svc))
}

type galleryResponse struct {
	Gallery galleryMeta     `json:"gallery"`
	Quota   *int            `json:"max_selections,omitempty"`
	Assets  []assetResponse `json:"assets"`
}

type galleryMeta struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SelectedCount int    `json:"selected_count"`
}

type assetResponse struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	ContentKind ContentKind `json:"content_kind"`
	IsSelected  bool        `json:"is_selected"`
	Comment     string      `json:"comment,omitempty"`
	URL         string      `json:"url"`
	CreatedAt   time.Time   `json:"created_at"`
}

// viewGalleryHandler devuelve la galería del grant con URLs firmadas.
// @Summary Ver galería compartida
// @Tags gallery
// @Router /gallery [get]
func viewGalleryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vg, ok := grants.GetGrant(r.Context())
		if !ok {
			http.Error(w, "access denied", http.StatusUnauthorized)
			return
		}

		gal, assets, err := svc.ResolveForGrant(r.Context(), vg)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := galleryResponse{
			Gallery: galleryMeta{
				ID:            gal.ID,
				Name:          gal.Name,
				SelectedCount: gal.SelectedCount,
			},
			Quota:  vg.MaxSelections,
			Assets: make([]assetResponse, 0, len(assets)),
		}
		for _, a := range assets {
			out.Assets = append(out.Assets, assetResponse{
				ID:          a.ID,
				DisplayName: a.DisplayName,
				ContentKind: a.ContentKind,
				IsSelected:  a.IsSelected,
				Comment:     a.Comment,
				URL:         a.URL,
				CreatedAt:   a.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no extraer helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
