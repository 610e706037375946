// Package hmacsign emite URLs temporales firmadas con HMAC-SHA256.
// Es el issuer "local": el CDN/proxy de media verifica la firma con la
// misma clave. Si mañana la media se sirve desde un bucket con firmas
// propias, se cambia este adapter y el port queda igual.
package hmacsign

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrEmptyStorageKey = errors.New("empty storage key")

type Signer struct {
	baseURL string
	key     []byte
	now     func() time.Time
}

func New(baseURL string, key []byte) *Signer {
	return &Signer{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		key:     key,
		now:     time.Now,
	}
}

// IssueURL construye <base>/media/<key>?exp=<unix>&sig=<hex>.
func (s *Signer) IssueURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		return "", ErrEmptyStorageKey
	}

	exp := s.now().Add(ttl).Unix()
	sig := s.sign(storageKey, exp)

	return fmt.Sprintf("%s/media/%s?exp=%d&sig=%s",
		s.baseURL, url.PathEscape(storageKey), exp, sig), nil
}

// VerifyURL chequea firma y vigencia de un par (storageKey, exp, sig).
// Lo usa el proxy de media; está acá para que firmante y verificador
// no se desincronicen nunca.
func (s *Signer) VerifyURL(storageKey string, exp int64, sig string) bool {
	if s.now().Unix() >= exp {
		return false
	}
	expected := s.sign(storageKey, exp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *Signer) sign(storageKey string, exp int64) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(storageKey))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(exp, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
