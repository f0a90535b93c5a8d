package sealbox

import (
	"errors"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/compress"
	"github.com/sealbox/sealbox-go/internal/crypto"
	"github.com/sealbox/sealbox-go/internal/envelope"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrWeakPassword is returned when a password is shorter than
	// MinPasswordLength. Checked before any other work.
	ErrWeakPassword = errors.New("password too weak")

	// ErrMalformedEnvelope is returned when a blob fails structural
	// validation: bad magic, unknown version or algorithm id, a KDF cost
	// outside its accepted range, or a length field that disagrees with
	// the actual bytes.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrAuthenticationFailed is returned when the authentication tag does
	// not verify. It covers wrong passwords and tampered blobs; the two are
	// deliberately indistinguishable.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrCorruptPayload is returned when decompression fails after
	// successful authentication.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrInvalidParameters is returned for programmer errors: an unknown
	// algorithm, a compression level out of range, or a KDF cost outside
	// its accepted range.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrSignatureInvalid is returned when a detached blob signature does
	// not verify.
	ErrSignatureInvalid = errors.New("signature verification failed")
)

// SealboxError is implemented by all library errors.
type SealboxError interface {
	error
	SealboxError() // marker method
}

// EnvelopeError describes a structural parse failure.
type EnvelopeError struct {
	Err error
}

func (e *EnvelopeError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EnvelopeError) Is(target error) bool {
	return target == ErrMalformedEnvelope
}

// SealboxError implements the SealboxError interface.
func (e *EnvelopeError) SealboxError() {}

// PayloadError describes a decompression failure on an authenticated
// payload.
type PayloadError struct {
	Algorithm string
	Err       error
}

func (e *PayloadError) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("corrupt %s payload: %v", e.Algorithm, e.Err)
	}
	return fmt.Sprintf("corrupt payload: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PayloadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *PayloadError) Is(target error) bool {
	return target == ErrCorruptPayload
}

// SealboxError implements the SealboxError interface.
func (e *PayloadError) SealboxError() {}

// ParameterError describes an invalid configuration or primitive parameter.
type ParameterError struct {
	Message string
	Err     error
}

func (e *ParameterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid parameters: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid parameters: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ParameterError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// SealboxError implements the SealboxError interface.
func (e *ParameterError) SealboxError() {}

// wrapError converts internal package errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, envelope.ErrMalformed):
		return &EnvelopeError{Err: err}
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return ErrAuthenticationFailed
	case errors.Is(err, compress.ErrCorrupt):
		return &PayloadError{Err: err}
	case errors.Is(err, crypto.ErrInvalidParameters),
		errors.Is(err, crypto.ErrUnsupportedCipher),
		errors.Is(err, crypto.ErrUnsupportedKDF),
		errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrInvalidNonceSize),
		errors.Is(err, crypto.ErrInvalidTagSize),
		errors.Is(err, compress.ErrUnsupportedAlgorithm),
		errors.Is(err, compress.ErrInvalidLevel):
		return &ParameterError{Message: "primitive rejected input", Err: err}
	}

	return err
}
