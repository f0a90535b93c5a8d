package sealbox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
	"time"
)

const testPassword = "TestPassword123!"

// fastOpts keeps the KDF cheap so tests stay quick.
var fastOpts = []Option{WithKDFIterations(10000)}

func newTestSealer(t *testing.T, opts ...Option) *Sealer {
	t.Helper()
	s, err := New(testPassword, append(fastOpts, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSealOpen_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{0x42}},
		{"text", []byte("Hello, World!")},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80, 0x00}},
		{"repetitive", bytes.Repeat([]byte("abcdef"), 5000)},
	}

	s := newTestSealer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := s.Seal(tt.plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			plaintext, err := s.Open(blob)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(plaintext, tt.plaintext) {
				t.Errorf("Open() = %d bytes, want %d", len(plaintext), len(tt.plaintext))
			}
		})
	}
}

func TestSealOpen_AllConfigurations(t *testing.T) {
	plaintext := bytes.Repeat([]byte("configuration round-trip "), 100)

	compressions := []Compression{CompressionStore, CompressionZlib, CompressionLZMA, CompressionBrotli, CompressionZstd}
	ciphers := []Cipher{CipherAESGCM, CipherChaCha20Poly1305}
	kdfs := []struct {
		kdf  KDF
		cost uint32
	}{
		{KDFPBKDF2, 10000},
		{KDFScrypt, 1 << 14},
		{KDFArgon2id, 1},
	}

	for _, comp := range compressions {
		for _, ciph := range ciphers {
			for _, k := range kdfs {
				name := comp.String() + "/" + ciph.String() + "/" + k.kdf.String()
				t.Run(name, func(t *testing.T) {
					s, err := New(testPassword,
						WithCompression(comp),
						WithCipher(ciph),
						WithKDF(k.kdf),
						WithKDFIterations(k.cost),
					)
					if err != nil {
						t.Fatal(err)
					}

					blob, err := s.Seal(plaintext)
					if err != nil {
						t.Fatalf("Seal() error = %v", err)
					}
					out, err := s.Open(blob)
					if err != nil {
						t.Fatalf("Open() error = %v", err)
					}
					if !bytes.Equal(out, plaintext) {
						t.Error("round-trip mismatch")
					}
				})
			}
		}
	}
}

func TestSeal_KnownFormat(t *testing.T) {
	// Reference scenario: zlib + AES-256-GCM + PBKDF2(100000).
	s, err := New(testPassword,
		WithCompression(CompressionZlib),
		WithCipher(CipherAESGCM),
		WithKDF(KDFPBKDF2),
		WithKDFIterations(100000),
	)
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("Hello, World!")
	blob, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if !bytes.HasPrefix(blob, []byte("SBOX")) {
		t.Errorf("blob prefix = % x, want magic", blob[:4])
	}
	if blob[4] != 1 {
		t.Errorf("version = %d, want 1", blob[4])
	}
	if Compression(blob[5]) != CompressionZlib {
		t.Errorf("compression id = %d, want zlib", blob[5])
	}
	if Cipher(blob[6]) != CipherAESGCM {
		t.Errorf("cipher id = %d, want AES-256-GCM", blob[6])
	}
	if KDF(blob[7]) != KDFPBKDF2 {
		t.Errorf("kdf id = %d, want PBKDF2", blob[7])
	}

	out, err := s.Open(blob)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if string(out) != "Hello, World!" {
		t.Errorf("Open() = %q, want %q", out, "Hello, World!")
	}
}

func TestOpen_WrongPassword(t *testing.T) {
	s := newTestSealer(t)
	blob, err := s.Seal([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	other, err := New("DifferentPassword!", fastOpts...)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Open(blob); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Open() error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestOpen_TamperedBlob(t *testing.T) {
	s := newTestSealer(t, WithCompression(CompressionStore))
	blob, err := s.Seal([]byte("tamper detection payload"))
	if err != nil {
		t.Fatal(err)
	}

	// Flipping any single bit anywhere in the blob must fail, never
	// return altered plaintext. High bits of the cost field must be
	// rejected structurally, before any key derivation.
	for i := range blob {
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), blob...)
			mutated[i] ^= 1 << bit

			out, err := s.Open(mutated)
			if err == nil {
				t.Fatalf("Open() succeeded with byte %d bit %d flipped, returned %q", i, bit, out)
			}
			if !errors.Is(err, ErrAuthenticationFailed) && !errors.Is(err, ErrMalformedEnvelope) {
				t.Errorf("byte %d bit %d: error = %v, want ErrAuthenticationFailed or ErrMalformedEnvelope", i, bit, err)
			}
		}
	}
}

func TestOpen_ForgedKDFCost(t *testing.T) {
	s := newTestSealer(t)
	blob, err := s.Seal([]byte("cost forgery payload"))
	if err != nil {
		t.Fatal(err)
	}

	// The cost field occupies bytes 8-11 of the header. A forged value
	// outside the KDF's accepted range must fail as malformed, without
	// Open spending the derivation work the forgery asks for.
	tests := []struct {
		name string
		cost uint32
	}{
		{"downgraded to one iteration", 1},
		{"below floor", 9999},
		{"max uint32", 0xFFFFFFFF},
		{"single high bit set", 1<<31 | 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forged := append([]byte(nil), blob...)
			binary.BigEndian.PutUint32(forged[8:12], tt.cost)

			start := time.Now()
			_, err := s.Open(forged)
			elapsed := time.Since(start)

			if !errors.Is(err, ErrMalformedEnvelope) {
				t.Errorf("Open() error = %v, want ErrMalformedEnvelope", err)
			}
			if elapsed > time.Second {
				t.Errorf("Open() took %v on a forged cost; derivation should never have started", elapsed)
			}
		})
	}
}

func TestOpen_Truncated(t *testing.T) {
	s := newTestSealer(t)
	blob, err := s.Seal([]byte("truncation test payload"))
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{0, 4, 12, len(blob) / 2, len(blob) - 1} {
		if _, err := s.Open(blob[:n]); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("Open(blob[:%d]) error = %v, want ErrMalformedEnvelope", n, err)
		}
	}
}

func TestSeal_BlobsAreUnique(t *testing.T) {
	s := newTestSealer(t)
	plaintext := []byte("identical input")

	a, err := s.Seal(plaintext)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Seal(plaintext)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("two Seal calls produced identical blobs; salt/nonce not fresh")
	}
}

func TestNew_WeakPassword(t *testing.T) {
	for _, pw := range []string{"", "short", "1234567"} {
		if _, err := New(pw); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("New(%q) error = %v, want ErrWeakPassword", pw, err)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"level too low", []Option{WithCompressionLevel(0)}},
		{"level too high", []Option{WithCompressionLevel(10)}},
		{"unknown compression", []Option{WithCompression(Compression(99))}},
		{"unknown cipher", []Option{WithCipher(Cipher(99))}},
		{"unknown kdf", []Option{WithKDF(KDF(99))}},
		{"pbkdf2 below floor", []Option{WithKDFIterations(9999)}},
		{"pbkdf2 above ceiling", []Option{WithKDFIterations(5000001)}},
		{"scrypt not power of two", []Option{WithKDF(KDFScrypt), WithKDFIterations(10000)}},
		{"argon2 above ceiling", []Option{WithKDF(KDFArgon2id), WithKDFIterations(65)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(testPassword, tt.opts...); !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("New() error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestSealer_StringRoundTrip(t *testing.T) {
	s := newTestSealer(t)

	blob, err := s.SealString("héllo, wörld")
	if err != nil {
		t.Fatal(err)
	}
	text, err := s.OpenString(blob)
	if err != nil {
		t.Fatal(err)
	}
	if text != "héllo, wörld" {
		t.Errorf("OpenString() = %q", text)
	}
}

func TestSealer_SetPassword(t *testing.T) {
	s := newTestSealer(t)
	oldBlob, err := s.Seal([]byte("sealed before rotation"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetPassword("weak"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("SetPassword(weak) error = %v, want ErrWeakPassword", err)
	}
	if err := s.SetPassword("RotatedPassword456!"); err != nil {
		t.Fatal(err)
	}

	// Old blobs no longer open; new blobs do.
	if _, err := s.Open(oldBlob); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Open(old blob) error = %v, want ErrAuthenticationFailed", err)
	}
	newBlob, err := s.Seal([]byte("sealed after rotation"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Open(newBlob); err != nil {
		t.Errorf("Open(new blob) error = %v", err)
	}
}

func TestOneShot_SealOpen(t *testing.T) {
	blob, err := Seal([]byte("one shot"), testPassword, fastOpts...)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Open(blob, testPassword)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "one shot" {
		t.Errorf("Open() = %q", out)
	}
}

func TestOpen_UsesHeaderParameters(t *testing.T) {
	// A blob sealed with one configuration opens with a Sealer holding a
	// different one: every parameter travels in the header.
	sealer, err := New(testPassword,
		WithCompression(CompressionBrotli),
		WithCipher(CipherChaCha20Poly1305),
		WithKDF(KDFArgon2id),
		WithKDFIterations(2),
	)
	if err != nil {
		t.Fatal(err)
	}
	blob, err := sealer.Seal([]byte("cross-config payload"))
	if err != nil {
		t.Fatal(err)
	}

	opener := newTestSealer(t) // defaults: auto-select, AES-GCM, PBKDF2
	out, err := opener.Open(blob)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if string(out) != "cross-config payload" {
		t.Errorf("Open() = %q", out)
	}
}

func TestSealer_AutoSelectNeverExpands(t *testing.T) {
	s := newTestSealer(t)
	compressible := []byte(strings.Repeat("compress me please ", 1000))

	blob, err := s.Seal(compressible)
	if err != nil {
		t.Fatal(err)
	}
	if len(blob) >= len(compressible) {
		t.Errorf("sealed %d bytes from %d compressible input", len(blob), len(compressible))
	}
}

func TestSealer_Info(t *testing.T) {
	s := newTestSealer(t, WithCipher(CipherChaCha20Poly1305))
	info := s.Info()

	if info.Cipher != CipherChaCha20Poly1305 {
		t.Errorf("Cipher = %v", info.Cipher)
	}
	if info.KDF != KDFPBKDF2 {
		t.Errorf("KDF = %v", info.KDF)
	}
	if info.KDFCost != 10000 {
		t.Errorf("KDFCost = %d, want 10000", info.KDFCost)
	}
	if !info.AutoSelectCompression {
		t.Error("AutoSelectCompression = false, want true by default")
	}
}

func TestRatio(t *testing.T) {
	if r := Ratio(nil, []byte("xx")); r != 0 {
		t.Errorf("Ratio(empty) = %v, want 0", r)
	}
	if r := Ratio(make([]byte, 100), make([]byte, 50)); r != 0.5 {
		t.Errorf("Ratio() = %v, want 0.5", r)
	}
}

func TestEstimateOutputSize(t *testing.T) {
	s := newTestSealer(t, WithCompression(CompressionZlib))

	est := s.EstimateOutputSize(1000)
	if est.OriginalSize != 1000 {
		t.Errorf("OriginalSize = %d", est.OriginalSize)
	}
	if est.CompressedSize <= 0 || est.CompressedSize > 1000 {
		t.Errorf("CompressedSize = %d", est.CompressedSize)
	}
	if est.FinalSize <= est.CompressedSize {
		t.Error("FinalSize must include envelope overhead")
	}
	if est.TotalRatio <= 0 {
		t.Errorf("TotalRatio = %v", est.TotalRatio)
	}

	empty := s.EstimateOutputSize(0)
	if empty.TotalRatio != 0 {
		t.Errorf("TotalRatio for empty input = %v, want 0", empty.TotalRatio)
	}
}
