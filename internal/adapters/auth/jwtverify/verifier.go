// Package jwtverify implementa auth.AuthVerifier contra los JWT HS256
// que emite el identity provider del estudio. Acá no se emiten tokens;
// solo se verifican.
package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"studio-gallery/internal/ports/auth"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrInvalidToken = errors.New("invalid token")
)

type Verifier struct {
	key []byte
}

func NewVerifier(key []byte) *Verifier {
	return &Verifier{key: key}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	StudioID string `json:"studio_id,omitempty"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:   strings.TrimSpace(claims.Subject),
		Email:    strings.TrimSpace(claims.Email),
		StudioID: strings.TrimSpace(claims.StudioID),
	}, nil
}
