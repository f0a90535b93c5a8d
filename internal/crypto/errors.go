package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when the symmetric key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidTagSize is returned when the authentication tag size is invalid.
	ErrInvalidTagSize = errors.New("invalid tag size")

	// ErrAuthenticationFailed is returned when AEAD verification fails.
	// It covers wrong keys (hence wrong passwords) and tampered
	// ciphertext, tag, or associated data; the cases are not distinguished.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidParameters is returned when a primitive is called with
	// parameters that can never be valid: zero cost, empty salt, or a zero
	// output length.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrUnsupportedCipher is returned when a cipher identifier is not
	// recognized.
	ErrUnsupportedCipher = errors.New("unsupported cipher")

	// ErrUnsupportedKDF is returned when a KDF identifier is not recognized.
	ErrUnsupportedKDF = errors.New("unsupported KDF")
)
