package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher identifies an AEAD cipher. The numeric value is the identifier
// carried in the envelope header.
type Cipher byte

const (
	// CipherAESGCM is AES-256-GCM.
	CipherAESGCM Cipher = 1
	// CipherChaCha20Poly1305 is ChaCha20-Poly1305.
	CipherChaCha20Poly1305 Cipher = 2
)

// Valid reports whether c is a recognized cipher identifier.
func (c Cipher) Valid() bool {
	return c == CipherAESGCM || c == CipherChaCha20Poly1305
}

// String returns the canonical cipher name.
func (c Cipher) String() string {
	switch c {
	case CipherAESGCM:
		return "AES-256-GCM"
	case CipherChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return fmt.Sprintf("cipher(%d)", byte(c))
	}
}

// newAEAD constructs the AEAD for c with the given 32-byte key.
func newAEAD(c Cipher, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	switch c {
	case CipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case CipherChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCipher, byte(c))
	}
}

// Encrypt encrypts plaintext under key and nonce, binding aad into the
// authentication tag. The ciphertext and tag are returned separately; the
// ciphertext is always exactly len(plaintext) bytes.
func Encrypt(c Cipher, key, nonce, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	if len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aead, err := newAEAD(c, key)
	if err != nil {
		return nil, nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - TagSize
	return sealed[:split], sealed[split:], nil
}

// Decrypt verifies tag over ciphertext and aad and returns the plaintext.
// Every verification failure is reported as ErrAuthenticationFailed.
func Decrypt(c Cipher, key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}
	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidTagSize, len(tag), TagSize)
	}

	aead, err := newAEAD(c, key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
