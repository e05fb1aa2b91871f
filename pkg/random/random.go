package random

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenBytes tamaño por defecto de los tokens opacos (verificación y recuperación).
const TokenBytes = 32

// Hex devuelve n bytes criptográficamente aleatorios codificados en hexadecimal.
// No se garantiza unicidad: con 32 bytes (2^256) la probabilidad de colisión es despreciable.
func Hex(n int) (string, error) {
	if n <= 0 {
		n = TokenBytes
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
