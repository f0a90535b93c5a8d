package sealbox

import (
	"github.com/sealbox/sealbox-go/internal/compress"
	"github.com/sealbox/sealbox-go/internal/crypto"
)

// Compression selects a compression algorithm.
type Compression byte

const (
	// CompressionStore disables compression.
	CompressionStore Compression = Compression(compress.Store)
	// CompressionZlib is DEFLATE in a zlib wrapper (RFC 1950).
	CompressionZlib Compression = Compression(compress.Zlib)
	// CompressionLZMA is the raw LZMA stream format.
	CompressionLZMA Compression = Compression(compress.LZMA)
	// CompressionBrotli is the brotli format (RFC 7932).
	CompressionBrotli Compression = Compression(compress.Brotli)
	// CompressionZstd is the zstandard format (RFC 8878).
	CompressionZstd Compression = Compression(compress.Zstd)
)

// String returns the canonical algorithm name.
func (c Compression) String() string { return compress.Algorithm(c).String() }

// Cipher selects an AEAD cipher.
type Cipher byte

const (
	// CipherAESGCM is AES-256-GCM.
	CipherAESGCM Cipher = Cipher(crypto.CipherAESGCM)
	// CipherChaCha20Poly1305 is ChaCha20-Poly1305.
	CipherChaCha20Poly1305 Cipher = Cipher(crypto.CipherChaCha20Poly1305)
)

// String returns the canonical cipher name.
func (c Cipher) String() string { return crypto.Cipher(c).String() }

// KDF selects a password-based key derivation function.
type KDF byte

const (
	// KDFPBKDF2 is PBKDF2-HMAC-SHA-256. Cost is the iteration count.
	KDFPBKDF2 KDF = KDF(crypto.KDFPBKDF2)
	// KDFScrypt is scrypt. Cost is N and must be a power of two.
	KDFScrypt KDF = KDF(crypto.KDFScrypt)
	// KDFArgon2id is Argon2id. Cost is the pass count.
	KDFArgon2id KDF = KDF(crypto.KDFArgon2id)
)

// String returns the canonical KDF name.
func (k KDF) String() string { return crypto.KDF(k).String() }

const (
	// MinPasswordLength is the password floor enforced by New and
	// SetPassword.
	MinPasswordLength = 8

	// DefaultCompressionLevel is the balanced preset.
	DefaultCompressionLevel = compress.DefaultLevel

	// DefaultPBKDF2Iterations is the default PBKDF2 iteration count.
	DefaultPBKDF2Iterations = 100000

	// DefaultScryptCost is the default scrypt cost parameter N.
	DefaultScryptCost = 1 << 15

	// DefaultArgon2Passes is the default Argon2id pass count.
	DefaultArgon2Passes = 3
)

// sealerConfig holds configuration for a Sealer.
type sealerConfig struct {
	compression Compression
	level       int
	cipher      Cipher
	autoSelect  bool
	kdf         KDF
	kdfCost     uint32 // 0 means the per-KDF default
}

func defaultConfig() sealerConfig {
	return sealerConfig{
		compression: CompressionZlib,
		level:       DefaultCompressionLevel,
		cipher:      CipherAESGCM,
		autoSelect:  true,
		kdf:         KDFPBKDF2,
	}
}

// defaultCost returns the default cost parameter for k.
func defaultCost(k KDF) uint32 {
	switch k {
	case KDFScrypt:
		return DefaultScryptCost
	case KDFArgon2id:
		return DefaultArgon2Passes
	default:
		return DefaultPBKDF2Iterations
	}
}

// Option configures a Sealer.
type Option func(*sealerConfig)

// WithCompression sets the compression algorithm. It also disables
// auto-selection, since an explicit choice overrides the size comparison.
func WithCompression(c Compression) Option {
	return func(cfg *sealerConfig) {
		cfg.compression = c
		cfg.autoSelect = false
	}
}

// WithCompressionLevel sets the compression level, 1 (fastest) through
// 9 (smallest). Default: 5.
func WithCompressionLevel(level int) Option {
	return func(cfg *sealerConfig) {
		cfg.level = level
	}
}

// WithCipher sets the AEAD cipher. Default: AES-256-GCM.
func WithCipher(c Cipher) Option {
	return func(cfg *sealerConfig) {
		cfg.cipher = c
	}
}

// WithAutoSelectCompression enables or disables compression auto-selection.
// When enabled, Seal compresses with every available algorithm and keeps the
// smallest output. Default: enabled.
func WithAutoSelectCompression(enabled bool) Option {
	return func(cfg *sealerConfig) {
		cfg.autoSelect = enabled
	}
}

// WithKDF sets the key derivation function. Default: PBKDF2-HMAC-SHA-256.
func WithKDF(k KDF) Option {
	return func(cfg *sealerConfig) {
		cfg.kdf = k
		cfg.kdfCost = 0
	}
}

// WithKDFIterations sets the KDF cost parameter. Its meaning is
// KDF-specific: PBKDF2 iterations (10,000 to 5,000,000), scrypt N (power of
// two, 16,384 to 1,048,576), or Argon2id passes (1 to 64). The value is
// stored in every sealed blob, so Open always re-derives with the
// sealing-side cost; Open holds the stored value to the same bounds.
func WithKDFIterations(cost uint32) Option {
	return func(cfg *sealerConfig) {
		cfg.kdfCost = cost
	}
}

// validate checks the assembled configuration and resolves the KDF cost
// default.
func (cfg *sealerConfig) validate() error {
	if !compress.Algorithm(cfg.compression).Valid() {
		return &ParameterError{Message: "unknown compression algorithm"}
	}
	if cfg.level < compress.MinLevel || cfg.level > compress.MaxLevel {
		return &ParameterError{Message: "compression level must be 1-9"}
	}
	if !crypto.Cipher(cfg.cipher).Valid() {
		return &ParameterError{Message: "unknown cipher"}
	}
	if !crypto.KDF(cfg.kdf).Valid() {
		return &ParameterError{Message: "unknown KDF"}
	}
	if cfg.kdfCost == 0 {
		cfg.kdfCost = defaultCost(cfg.kdf)
	}
	if err := crypto.KDF(cfg.kdf).ValidateCost(cfg.kdfCost); err != nil {
		return wrapError(err)
	}
	return nil
}
