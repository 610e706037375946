package auth

import "context"

// AuthVerifier verifica el token de sesión del dueño del estudio
// y devuelve claims o error. La identidad del owner la maneja el
// identity provider de siempre; este core solo la consume.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
