package galleries

import (
	"context"
	"errors"
	"strings"
	"time"

	"studio-gallery/internal/domain/grants"
	"studio-gallery/internal/ports/signer"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo   Repository
	signer signer.URLSigner
	urlTTL time.Duration
}

func NewService(repo Repository, urlSigner signer.URLSigner, urlTTL time.Duration) *Service {
	return &Service{
		repo:   repo,
		signer: urlSigner,
		urlTTL: urlTTL,
	}
}

// ResolvedAsset es un asset con su URL temporal ya emitida.
type ResolvedAsset struct {
	Asset
	URL string
}

// ResolveForGrant lista los assets de la galería del grant, cada uno con
// su signed URL. Único invariante propio: jamás resolver assets fuera de
// la galería del grant — por eso el input es un ValidatedGrant y el
// listado sale filtrado por su GalleryID.
func (s *Service) ResolveForGrant(ctx context.Context, vg grants.ValidatedGrant) (Gallery, []ResolvedAsset, error) {
	gal, err := s.repo.GetGallery(ctx, vg.GalleryID)
	if err != nil {
		return Gallery{}, nil, err
	}

	items, err := s.repo.ListAssets(ctx, vg.GalleryID)
	if err != nil {
		return Gallery{}, nil, err
	}

	out := make([]ResolvedAsset, 0, len(items))
	for _, a := range items {
		url, err := s.signer.IssueURL(ctx, a.StorageKey, s.urlTTL)
		if err != nil {
			return Gallery{}, nil, err
		}
		out = append(out, ResolvedAsset{Asset: a, URL: url})
	}
	return gal, out, nil
}

// OwnerOf expone el ownerUserID de una galería.
// Lo usa el módulo de grants para chequear ownership sin ciclos de import.
func (s *Service) OwnerOf(ctx context.Context, galleryID string) (string, error) {
	galleryID = strings.TrimSpace(galleryID)
	if galleryID == "" {
		return "", ErrInvalidInput
	}
	gal, err := s.repo.GetGallery(ctx, galleryID)
	if err != nil {
		return "", err
	}
	return gal.OwnerUserID, nil
}
