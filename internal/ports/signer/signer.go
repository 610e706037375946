package signer

import (
	"context"
	"time"
)

// URLSigner emite URLs temporales para bajar los bytes de un asset.
// El core nunca toca los bytes; solo referencias opacas (storage key).
type URLSigner interface {
	IssueURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
}
