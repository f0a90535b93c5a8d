package crypto

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// Zero overwrites b with zeros. Used to wipe derived keys and intermediate
// plaintext buffers before they go out of scope.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
