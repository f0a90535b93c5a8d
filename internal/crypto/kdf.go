package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KDF identifies a password-based key derivation function. The numeric value
// is the identifier carried in the envelope header.
type KDF byte

const (
	// KDFPBKDF2 is PBKDF2-HMAC-SHA-256. Cost is the iteration count.
	KDFPBKDF2 KDF = 1
	// KDFScrypt is scrypt with r=8, p=1. Cost is N.
	KDFScrypt KDF = 2
	// KDFArgon2id is Argon2id with 64 MiB memory and 4 lanes. Cost is the
	// pass count.
	KDFArgon2id KDF = 3
)

const (
	// MinPBKDF2Iterations is the safety floor for PBKDF2 iteration counts.
	MinPBKDF2Iterations = 10000
	// MaxPBKDF2Iterations caps PBKDF2 iteration counts. A blob header can
	// name any 32-bit cost, so the cap bounds the work an Open call spends
	// before the tag check can reject a forgery.
	MaxPBKDF2Iterations = 5000000

	// MinScryptCost is the safety floor for the scrypt cost parameter N.
	MinScryptCost = 1 << 14
	// MaxScryptCost caps the scrypt cost parameter N. At r=8 the memory
	// requirement is 1024*N bytes, so this caps derivation at 1 GiB.
	MaxScryptCost = 1 << 20

	// MaxArgon2Passes caps the Argon2id pass count over the fixed 64 MiB
	// memory block.
	MaxArgon2Passes = 64

	// Argon2id fixed parameters.
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4

	// scrypt fixed parameters.
	scryptR = 8
	scryptP = 1
)

// Valid reports whether k is a recognized KDF identifier.
func (k KDF) Valid() bool {
	return k == KDFPBKDF2 || k == KDFScrypt || k == KDFArgon2id
}

// String returns the canonical KDF name.
func (k KDF) String() string {
	switch k {
	case KDFPBKDF2:
		return "PBKDF2-HMAC-SHA-256"
	case KDFScrypt:
		return "scrypt"
	case KDFArgon2id:
		return "Argon2id"
	default:
		return fmt.Sprintf("kdf(%d)", byte(k))
	}
}

// ValidateCost checks the cost parameter against the safety floor and the
// work ceiling for k. The meaning of cost is KDF-specific: PBKDF2
// iterations, scrypt N, or Argon2id passes. Open runs this against the cost
// stored in a blob header before deriving anything, so a forged cost cannot
// dictate unbounded derivation work.
func (k KDF) ValidateCost(cost uint32) error {
	switch k {
	case KDFPBKDF2:
		if cost < MinPBKDF2Iterations || cost > MaxPBKDF2Iterations {
			return fmt.Errorf("%w: PBKDF2 iterations %d outside [%d, %d]", ErrInvalidParameters, cost, MinPBKDF2Iterations, MaxPBKDF2Iterations)
		}
	case KDFScrypt:
		if cost < MinScryptCost || cost > MaxScryptCost || cost&(cost-1) != 0 {
			return fmt.Errorf("%w: scrypt cost %d must be a power of two in [%d, %d]", ErrInvalidParameters, cost, MinScryptCost, MaxScryptCost)
		}
	case KDFArgon2id:
		if cost < 1 || cost > MaxArgon2Passes {
			return fmt.Errorf("%w: Argon2id passes %d outside [1, %d]", ErrInvalidParameters, cost, MaxArgon2Passes)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedKDF, byte(k))
	}
	return nil
}

// DeriveKey derives length bytes of key material from password and salt.
// Identical inputs always yield identical output. The returned key is
// caller-owned and must be wiped with Zero after use.
func DeriveKey(k KDF, password, salt []byte, cost uint32, length int) ([]byte, error) {
	if cost == 0 {
		return nil, fmt.Errorf("%w: cost must be non-zero", ErrInvalidParameters)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt must be non-empty", ErrInvalidParameters)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: output length must be positive", ErrInvalidParameters)
	}

	switch k {
	case KDFPBKDF2:
		return pbkdf2.Key(password, salt, int(cost), length, sha256.New), nil
	case KDFScrypt:
		if cost&(cost-1) != 0 || cost < 2 {
			return nil, fmt.Errorf("%w: scrypt cost %d is not a power of two > 1", ErrInvalidParameters, cost)
		}
		key, err := scrypt.Key(password, salt, int(cost), scryptR, scryptP, length)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
		return key, nil
	case KDFArgon2id:
		return argon2.IDKey(password, salt, cost, argonMemory, argonThreads, uint32(length)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKDF, byte(k))
	}
}
