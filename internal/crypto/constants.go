package crypto

const (
	// KeySize is the symmetric key size in bytes. Both supported ciphers
	// use 256-bit keys.
	KeySize = 32

	// NonceSize is the AEAD nonce size in bytes. AES-GCM and
	// ChaCha20-Poly1305 both use 96-bit nonces.
	NonceSize = 12

	// TagSize is the AEAD authentication tag size in bytes.
	TagSize = 16

	// SaltSize is the KDF salt size in bytes.
	SaltSize = 16
)
