package hmacsign

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestIssueURL_ShapeAndExpiry(t *testing.T) {
	s := New("https://media.estudio.test/", []byte("k1"))
	s.now = fixedNow

	raw, err := s.IssueURL(context.Background(), "2026/boda-garcia/IMG_0042.jpg", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "media.estudio.test", u.Host)
	require.True(t, strings.HasPrefix(u.Path, "/media/"))

	exp, err := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	require.NoError(t, err)
	require.Equal(t, fixedNow().Add(15*time.Minute).Unix(), exp)
	require.NotEmpty(t, u.Query().Get("sig"))
}

func TestVerifyURL_RoundTrip(t *testing.T) {
	s := New("https://media.estudio.test", []byte("k1"))
	s.now = fixedNow

	key := "2026/boda-garcia/IMG_0042.jpg"
	exp := fixedNow().Add(time.Hour).Unix()
	sig := s.sign(key, exp)

	require.True(t, s.VerifyURL(key, exp, sig))
	require.False(t, s.VerifyURL(key, exp, sig+"00"), "firma adulterada")
	require.False(t, s.VerifyURL("otro.jpg", exp, sig), "key distinto")

	// vencida
	require.False(t, s.VerifyURL(key, fixedNow().Unix(), sig))
}

func TestIssueURL_KeyMatters(t *testing.T) {
	a := New("https://media.estudio.test", []byte("k1"))
	a.now = fixedNow
	b := New("https://media.estudio.test", []byte("k2"))
	b.now = fixedNow

	ua, err := a.IssueURL(context.Background(), "x.jpg", time.Minute)
	require.NoError(t, err)
	ub, err := b.IssueURL(context.Background(), "x.jpg", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, ua, ub, "misma URL con claves distintas")
}

func TestIssueURL_EmptyKey(t *testing.T) {
	s := New("https://media.estudio.test", []byte("k1"))
	_, err := s.IssueURL(context.Background(), "  ", time.Minute)
	require.ErrorIs(t, err, ErrEmptyStorageKey)
}
