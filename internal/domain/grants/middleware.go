package grants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Vive acá y no en internal/middleware para no crear un ciclo de
// imports (middleware -> grants -> middleware).

type ctxKey string

const grantKey ctxKey = "validated-grant"

// PasswordHeader es donde el cliente manda el password del link, si lo hay.
const PasswordHeader = "X-Gallery-Password"

// GrantContext valida el bearer token del cliente en cada request y deja
// el ValidatedGrant en el contexto. A diferencia del AuthContext de
// owners, acá sí cortamos: sin grant válido no hay nada que hacer
// downstream.
//
// Mapeo hacia afuera (a propósito):
//   - NotFound / Inactive / Expired => 401 "access denied", indistinguibles
//     entre sí, para no regalar enumeración de tokens.
//   - PasswordRequired / PasswordIncorrect => 401 con code, para que la
//     UI pueda re-pedir el password.
func GrantContext(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			password := r.Header.Get(PasswordHeader)

			vg, err := svc.Validate(r.Context(), token, password)
			if err != nil {
				writeValidationError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), grantKey, vg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGrant devuelve el ValidatedGrant dejado por GrantContext.
func GetGrant(ctx context.Context) (ValidatedGrant, bool) {
	v := ctx.Value(grantKey)
	if v == nil {
		return ValidatedGrant{}, false
	}
	vg, ok := v.(ValidatedGrant)
	return vg, ok
}

func writeValidationError(w http.ResponseWriter, err error) {
	type body struct {
		Error string `json:"error"`
		Code  string `json:"code,omitempty"`
	}

	switch {
	case errors.Is(err, ErrPasswordRequired):
		writeErrJSON(w, http.StatusUnauthorized, body{Error: "access denied", Code: "password_required"})
	case errors.Is(err, ErrPasswordIncorrect):
		writeErrJSON(w, http.StatusUnauthorized, body{Error: "access denied", Code: "password_incorrect"})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInactive), errors.Is(err, ErrExpired):
		// los tres idénticos hacia afuera
		writeErrJSON(w, http.StatusUnauthorized, body{Error: "access denied"})
	default:
		writeErrJSON(w, http.StatusInternalServerError, body{Error: "internal error"})
	}
}

func writeErrJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
