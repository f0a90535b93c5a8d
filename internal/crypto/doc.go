// Package crypto provides the cryptographic primitives behind sealed blobs:
// authenticated encryption, password-based key derivation, and secure
// randomness.
//
// # Algorithm Suite
//
// The package supports the following algorithms, each addressable by the
// one-byte identifier carried in the envelope header:
//
//   - AES-256-GCM: authenticated encryption with associated data (AEAD).
//     32-byte key, 12-byte nonce, 16-byte tag.
//
//   - ChaCha20-Poly1305 (RFC 8439): AEAD alternative with the same key,
//     nonce, and tag sizes, preferable on hardware without AES acceleration.
//
//   - PBKDF2-HMAC-SHA-256 (RFC 8018): the primary password KDF. The cost
//     parameter is the iteration count.
//
//   - scrypt (RFC 7914): memory-hard KDF. The cost parameter is N and must
//     be a power of two greater than one; r=8 and p=1 are fixed.
//
//   - Argon2id (RFC 9106): memory-hard KDF. The cost parameter is the pass
//     count; memory (64 MiB) and parallelism (4 lanes) are fixed.
//
// # Security Model
//
// AEAD nonces MUST be unique per key. Callers generate a fresh random salt
// and a fresh random nonce for every encryption, so the derived key/nonce
// pair never repeats even for identical passwords and plaintexts.
//
// Decrypt collapses every verification failure into ErrAuthenticationFailed.
// A wrong password, a flipped ciphertext bit, and a tampered header byte are
// deliberately indistinguishable to the caller.
//
// Derived keys are caller-owned. Callers must wipe them with Zero on every
// exit path; this package never retains key material.
package crypto
