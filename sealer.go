package sealbox

import (
	"github.com/sealbox/sealbox-go/internal/compress"
	"github.com/sealbox/sealbox-go/internal/crypto"
	"github.com/sealbox/sealbox-go/internal/envelope"
)

// Sealer combines lossless compression with authenticated password-based
// encryption into a single reversible transform. Seal and Open are pure,
// synchronous, and safe for concurrent use; every call generates its own
// salt and nonce and shares no mutable state with other calls.
type Sealer struct {
	cfg      sealerConfig
	password []byte
}

// New creates a Sealer for the given password. The password must be at
// least MinPasswordLength characters; it is held for the lifetime of the
// Sealer so the caller can run repeated operations.
func New(password string, opts ...Option) (*Sealer, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Sealer{cfg: cfg, password: []byte(password)}, nil
}

// SetPassword replaces the configured password. The same length floor
// applies. Blobs sealed under the previous password still open with it, not
// with the new one. Not safe to call concurrently with Seal or Open.
func (s *Sealer) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	crypto.Zero(s.password)
	s.password = []byte(password)
	return nil
}

// Seal compresses plaintext, derives a key from the password and a fresh
// random salt, encrypts under a fresh random nonce with the envelope header
// bound as associated data, and returns the assembled blob.
//
// Two Seal calls with identical inputs produce different blobs: the salt and
// nonce are random per call, so key/nonce pairs never repeat.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	alg := compress.Algorithm(s.cfg.compression)

	var compressed []byte
	var err error
	if s.cfg.autoSelect {
		alg, compressed, err = compress.AutoSelect(plaintext, s.cfg.level)
	} else {
		compressed, err = compress.Compress(alg, plaintext, s.cfg.level)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	defer crypto.Zero(compressed)

	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(crypto.KDF(s.cfg.kdf), s.password, salt, s.cfg.kdfCost, crypto.KeySize)
	if err != nil {
		return nil, wrapError(err)
	}
	defer crypto.Zero(key)

	nonce, err := crypto.RandomBytes(crypto.NonceSize)
	if err != nil {
		return nil, err
	}

	header := &envelope.Header{
		Version:     envelope.Version,
		Compression: alg,
		Cipher:      crypto.Cipher(s.cfg.cipher),
		KDF:         crypto.KDF(s.cfg.kdf),
		KDFCost:     s.cfg.kdfCost,
		Salt:        salt,
		Nonce:       nonce,
	}

	ciphertext, tag, err := crypto.Encrypt(crypto.Cipher(s.cfg.cipher), key, nonce, compressed, header.Bytes())
	if err != nil {
		return nil, wrapError(err)
	}

	blob, err := envelope.Encode(header, ciphertext, tag)
	if err != nil {
		return nil, wrapError(err)
	}
	return blob, nil
}

// Open parses blob, re-derives the key from the password and the salt and
// cost stored in the header, verifies and decrypts the payload with the
// header bytes as associated data, and decompresses the result.
//
// Failures are final; there are no retries or fallbacks. A structural
// defect, including a KDF cost outside its accepted range, fails with
// ErrMalformedEnvelope before any key derivation. A wrong password and a
// tampered blob both fail with ErrAuthenticationFailed.
func (s *Sealer) Open(blob []byte) ([]byte, error) {
	header, aad, ciphertext, tag, err := envelope.Decode(blob)
	if err != nil {
		return nil, wrapError(err)
	}

	key, err := crypto.DeriveKey(header.KDF, s.password, header.Salt, header.KDFCost, crypto.KeySize)
	if err != nil {
		return nil, wrapError(err)
	}
	defer crypto.Zero(key)

	compressed, err := crypto.Decrypt(header.Cipher, key, header.Nonce, ciphertext, tag, aad)
	if err != nil {
		return nil, wrapError(err)
	}
	defer crypto.Zero(compressed)

	plaintext, err := compress.Decompress(header.Compression, compressed)
	if err != nil {
		return nil, &PayloadError{Algorithm: header.Compression.String(), Err: err}
	}
	return plaintext, nil
}

// SealString seals a UTF-8 string.
func (s *Sealer) SealString(text string) ([]byte, error) {
	return s.Seal([]byte(text))
}

// OpenString opens a blob sealed from a UTF-8 string.
func (s *Sealer) OpenString(blob []byte) (string, error) {
	plaintext, err := s.Open(blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Seal is a one-shot convenience that seals plaintext under password with
// the given options.
func Seal(plaintext []byte, password string, opts ...Option) ([]byte, error) {
	s, err := New(password, opts...)
	if err != nil {
		return nil, err
	}
	return s.Seal(plaintext)
}

// Open is a one-shot convenience that opens blob under password.
func Open(blob []byte, password string) ([]byte, error) {
	s, err := New(password)
	if err != nil {
		return nil, err
	}
	return s.Open(blob)
}

// Info is a snapshot of a Sealer's configuration.
type Info struct {
	Compression           Compression
	CompressionLevel      int
	Cipher                Cipher
	AutoSelectCompression bool
	KDF                   KDF
	KDFCost               uint32
}

// Info returns the Sealer's effective configuration, with the KDF cost
// default resolved.
func (s *Sealer) Info() Info {
	return Info{
		Compression:           s.cfg.compression,
		CompressionLevel:      s.cfg.level,
		Cipher:                s.cfg.cipher,
		AutoSelectCompression: s.cfg.autoSelect,
		KDF:                   s.cfg.kdf,
		KDFCost:               s.cfg.kdfCost,
	}
}

// Ratio returns the overall size ratio sealed/original, including envelope
// overhead. Returns 0 for empty input.
func Ratio(original, sealed []byte) float64 {
	if len(original) == 0 {
		return 0
	}
	return float64(len(sealed)) / float64(len(original))
}

// SizeEstimate is a rough prediction of sealed output size. Estimates come
// from fixed per-algorithm ratios and exist for reporting only; Seal always
// measures real compressed sizes when auto-selecting.
type SizeEstimate struct {
	OriginalSize     int
	CompressedSize   int
	FinalSize        int
	CompressionRatio float64
	TotalRatio       float64
}

// EstimateOutputSize predicts the sealed size for an input of inputSize
// bytes under the configured compression algorithm.
func (s *Sealer) EstimateOutputSize(inputSize int) SizeEstimate {
	ratio := compress.Algorithm(s.cfg.compression).EstimatedRatio()
	compressed := int(float64(inputSize) * ratio)
	final := compressed + envelope.Overhead

	est := SizeEstimate{
		OriginalSize:     inputSize,
		CompressedSize:   compressed,
		FinalSize:        final,
		CompressionRatio: ratio,
	}
	if inputSize > 0 {
		est.TotalRatio = float64(final) / float64(inputSize)
	}
	return est
}
