package sealbox

import (
	stdcrypto "crypto"
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// Detached signing is an auxiliary capability layered on top of sealed
// blobs. Signatures are not part of the envelope format: a signed blob is
// still a valid blob, and the signature travels separately. Use it when the
// opening side must know who produced a blob, which the symmetric envelope
// alone cannot prove.

// SigningKey signs sealed blobs with ML-DSA-65.
type SigningKey struct {
	priv *mldsa65.PrivateKey
}

// VerifyKey verifies detached blob signatures.
type VerifyKey struct {
	pub *mldsa65.PublicKey
}

// GenerateSigningKey creates a fresh ML-DSA-65 keypair.
func GenerateSigningKey() (*SigningKey, *VerifyKey, error) {
	pub, priv, err := mldsa65.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate signing key: %w", err)
	}
	return &SigningKey{priv: priv}, &VerifyKey{pub: pub}, nil
}

// Sign produces a detached signature over blob.
func (k *SigningKey) Sign(blob []byte) ([]byte, error) {
	sig, err := k.priv.Sign(rand.Reader, blob, stdcrypto.Hash(0))
	if err != nil {
		return nil, fmt.Errorf("sign blob: %w", err)
	}
	return sig, nil
}

// VerifyKey returns the verification key matching k.
func (k *SigningKey) VerifyKey() *VerifyKey {
	return &VerifyKey{pub: k.priv.Public().(*mldsa65.PublicKey)}
}

// MarshalBinary serializes the signing key.
func (k *SigningKey) MarshalBinary() ([]byte, error) {
	return k.priv.MarshalBinary()
}

// Verify checks a detached signature over blob. A tampered blob, a tampered
// signature, or a mismatched key all fail with ErrSignatureInvalid.
func (k *VerifyKey) Verify(blob, sig []byte) error {
	if !mldsa65.Verify(k.pub, blob, nil, sig) {
		return ErrSignatureInvalid
	}
	return nil
}

// MarshalBinary serializes the verification key.
func (k *VerifyKey) MarshalBinary() ([]byte, error) {
	return k.pub.MarshalBinary()
}

// ParseSigningKey deserializes a signing key.
func ParseSigningKey(data []byte) (*SigningKey, error) {
	if len(data) != mldsa65.PrivateKeySize {
		return nil, &ParameterError{Message: fmt.Sprintf("signing key must be %d bytes, got %d", mldsa65.PrivateKeySize, len(data))}
	}
	priv := new(mldsa65.PrivateKey)
	if err := priv.UnmarshalBinary(data); err != nil {
		return nil, &ParameterError{Message: "unparsable signing key", Err: err}
	}
	return &SigningKey{priv: priv}, nil
}

// ParseVerifyKey deserializes a verification key.
func ParseVerifyKey(data []byte) (*VerifyKey, error) {
	if len(data) != mldsa65.PublicKeySize {
		return nil, &ParameterError{Message: fmt.Sprintf("verify key must be %d bytes, got %d", mldsa65.PublicKeySize, len(data))}
	}
	pub := new(mldsa65.PublicKey)
	if err := pub.UnmarshalBinary(data); err != nil {
		return nil, &ParameterError{Message: "unparsable verify key", Err: err}
	}
	return &VerifyKey{pub: pub}, nil
}
