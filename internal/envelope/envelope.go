// Package envelope defines the sealed blob wire format and its codec.
//
// A sealed blob is the byte sequence
//
//	MAGIC(4) | VERSION(1) | COMPRESSION_ID(1) | CIPHER_ID(1) | KDF_ID(1) |
//	KDF_COST(4 BE) | SALT_LEN(1) | SALT | NONCE_LEN(1) | NONCE |
//	CIPHERTEXT_LEN(8 BE) | CIPHERTEXT | TAG(16)
//
// All multi-byte integers are big-endian. The header prefix (MAGIC through
// NONCE) doubles as the AEAD associated data, so tampering with any header
// field fails authentication even when the structural parse succeeds.
package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/compress"
	"github.com/sealbox/sealbox-go/internal/crypto"
)

// Magic identifies the sealed blob format.
var Magic = [4]byte{'S', 'B', 'O', 'X'}

// Version is the format version this implementation reads and writes.
const Version = 1

// fixedPrefixSize is the byte count of the fields preceding SALT:
// magic, version, three algorithm ids, cost, and the salt length byte.
const fixedPrefixSize = 4 + 1 + 1 + 1 + 1 + 4 + 1

// Overhead is the byte count a sealed blob adds over its ciphertext: the
// header prefix, the ciphertext length field, and the tag.
const Overhead = fixedPrefixSize + crypto.SaltSize + 1 + crypto.NonceSize + 8 + crypto.TagSize

// ErrMalformed is returned for any structural defect in a blob: bad magic,
// unknown version or algorithm identifier, a KDF cost outside its accepted
// range, a length field that disagrees with the actual bytes, truncation,
// or trailing garbage.
var ErrMalformed = errors.New("malformed envelope")

// Header carries every parameter needed to reverse a seal operation.
type Header struct {
	Version     byte
	Compression compress.Algorithm
	Cipher      crypto.Cipher
	KDF         crypto.KDF
	KDFCost     uint32
	Salt        []byte
	Nonce       []byte
}

// validateAlgorithms checks the version, the algorithm identifiers, and the
// KDF cost. The cost field is unauthenticated at parse time, so it is held
// to the same floor and ceiling as a configured cost; otherwise a forged
// blob could dictate arbitrary key derivation work before the tag check
// gets a chance to reject it.
func (h *Header) validateAlgorithms() error {
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformed, h.Version)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: unknown compression id %d", ErrMalformed, byte(h.Compression))
	}
	if !h.Cipher.Valid() {
		return fmt.Errorf("%w: unknown cipher id %d", ErrMalformed, byte(h.Cipher))
	}
	if !h.KDF.Valid() {
		return fmt.Errorf("%w: unknown KDF id %d", ErrMalformed, byte(h.KDF))
	}
	if err := h.KDF.ValidateCost(h.KDFCost); err != nil {
		return fmt.Errorf("%w: %s cost %d out of range", ErrMalformed, h.KDF, h.KDFCost)
	}
	return nil
}

// validateLengths checks that the salt and nonce match the lengths the
// selected algorithms require.
func (h *Header) validateLengths() error {
	if len(h.Salt) != crypto.SaltSize {
		return fmt.Errorf("%w: salt length %d, want %d", ErrMalformed, len(h.Salt), crypto.SaltSize)
	}
	if len(h.Nonce) != crypto.NonceSize {
		return fmt.Errorf("%w: nonce length %d, want %d", ErrMalformed, len(h.Nonce), crypto.NonceSize)
	}
	return nil
}

// Bytes returns the serialized header prefix (MAGIC through NONCE). This is
// the exact byte sequence bound as AEAD associated data.
func (h *Header) Bytes() []byte {
	b := make([]byte, 0, fixedPrefixSize+len(h.Salt)+1+len(h.Nonce))
	b = append(b, Magic[:]...)
	b = append(b, h.Version, byte(h.Compression), byte(h.Cipher), byte(h.KDF))
	b = binary.BigEndian.AppendUint32(b, h.KDFCost)
	b = append(b, byte(len(h.Salt)))
	b = append(b, h.Salt...)
	b = append(b, byte(len(h.Nonce)))
	b = append(b, h.Nonce...)
	return b
}

// Encode assembles a sealed blob from a header, ciphertext, and tag.
func Encode(h *Header, ciphertext, tag []byte) ([]byte, error) {
	if err := h.validateAlgorithms(); err != nil {
		return nil, err
	}
	if err := h.validateLengths(); err != nil {
		return nil, err
	}
	if len(tag) != crypto.TagSize {
		return nil, fmt.Errorf("%w: tag length %d, want %d", ErrMalformed, len(tag), crypto.TagSize)
	}

	prefix := h.Bytes()
	blob := make([]byte, 0, len(prefix)+8+len(ciphertext)+len(tag))
	blob = append(blob, prefix...)
	blob = binary.BigEndian.AppendUint64(blob, uint64(len(ciphertext)))
	blob = append(blob, ciphertext...)
	blob = append(blob, tag...)
	return blob, nil
}

// Decode parses and validates a sealed blob. It returns the header, the
// associated-data prefix, the ciphertext, and the tag, all aliasing blob.
// Validation is ordered so that no cryptographic work is wasted on garbage:
// fixed-length check, magic, version, algorithm ids, KDF cost bounds,
// declared salt/nonce lengths against the algorithms' requirements, and
// finally an exact match between the declared ciphertext length and the
// remaining bytes.
func Decode(blob []byte) (h *Header, aad, ciphertext, tag []byte, err error) {
	if len(blob) < fixedPrefixSize {
		return nil, nil, nil, nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(blob), fixedPrefixSize)
	}
	if !bytes.Equal(blob[:4], Magic[:]) {
		return nil, nil, nil, nil, fmt.Errorf("%w: bad magic", ErrMalformed)
	}

	h = &Header{
		Version:     blob[4],
		Compression: compress.Algorithm(blob[5]),
		Cipher:      crypto.Cipher(blob[6]),
		KDF:         crypto.KDF(blob[7]),
		KDFCost:     binary.BigEndian.Uint32(blob[8:12]),
	}
	if err := h.validateAlgorithms(); err != nil {
		return nil, nil, nil, nil, err
	}

	saltLen := int(blob[12])
	off := fixedPrefixSize
	if len(blob) < off+saltLen+1 {
		return nil, nil, nil, nil, fmt.Errorf("%w: truncated salt", ErrMalformed)
	}
	h.Salt = blob[off : off+saltLen]
	off += saltLen

	nonceLen := int(blob[off])
	off++
	if len(blob) < off+nonceLen+8 {
		return nil, nil, nil, nil, fmt.Errorf("%w: truncated nonce", ErrMalformed)
	}
	h.Nonce = blob[off : off+nonceLen]
	off += nonceLen

	if err := h.validateLengths(); err != nil {
		return nil, nil, nil, nil, err
	}
	aad = blob[:off]

	ctLen := binary.BigEndian.Uint64(blob[off : off+8])
	off += 8

	remaining := uint64(len(blob) - off)
	if remaining < crypto.TagSize || ctLen != remaining-crypto.TagSize {
		return nil, nil, nil, nil, fmt.Errorf("%w: ciphertext length %d disagrees with %d trailing bytes", ErrMalformed, ctLen, remaining)
	}

	ciphertext = blob[off : off+int(ctLen)]
	tag = blob[off+int(ctLen):]
	return h, aad, ciphertext, tag, nil
}
