// Package crypto concentra la generación de tokens y el hashing de
// passwords de links compartidos. Nada acá conoce el dominio.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// Parámetros Argon2id (hash server-side, una vez por request de validación).
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
)

// TokenBytes: 32 bytes = 256 bits de entropía para el bearer token.
// El spec de links pide mínimo 128; vamos holgados porque es gratis.
const TokenBytes = 32

// SaltLen es el largo del salt por-grant para el password hash.
const SaltLen = 16

// RandBytes devuelve n bytes criptográficamente seguros.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// NewToken genera un bearer token aleatorio, apto para URL (base64url sin padding).
func NewToken() (string, error) {
	b, err := RandBytes(TokenBytes)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashPassword deriva el hash Argon2id del password con el salt dado.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword compara en tiempo constante contra el hash esperado.
// Nunca usar == sobre hashes ni passwords.
func VerifyPassword(password, salt, expected []byte) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
