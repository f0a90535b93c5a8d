// Package compress provides a uniform adapter over the interchangeable
// compression algorithms a sealed blob may use. Every algorithm is a pure
// bytes-to-bytes transform with a deterministic round-trip; the algorithm
// identifier travels in the envelope header, never inside the payload.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"
)

// Algorithm identifies a compression algorithm. The numeric value is the
// identifier carried in the envelope header.
type Algorithm byte

const (
	// Store is the identity transform.
	Store Algorithm = 0
	// Zlib is DEFLATE in a zlib wrapper (RFC 1950).
	Zlib Algorithm = 1
	// LZMA is the raw LZMA stream format.
	LZMA Algorithm = 2
	// Brotli is the brotli format (RFC 7932).
	Brotli Algorithm = 3
	// Zstd is the zstandard format (RFC 8878).
	Zstd Algorithm = 4
)

// Compression levels. Levels run 1 (fastest) through 9 (smallest) and are
// mapped onto each algorithm's native presets.
const (
	MinLevel     = 1
	MaxLevel     = 9
	DefaultLevel = 5
)

var (
	// ErrCorrupt is returned when a decoder rejects its input stream.
	ErrCorrupt = errors.New("corrupt compressed payload")

	// ErrUnsupportedAlgorithm is returned when an algorithm identifier is
	// not recognized.
	ErrUnsupportedAlgorithm = errors.New("unsupported compression algorithm")

	// ErrInvalidLevel is returned when a level is outside [MinLevel, MaxLevel].
	ErrInvalidLevel = errors.New("invalid compression level")
)

// Algorithms lists every supported algorithm in wire-identifier order.
// Auto-selection iterates this slice, so ties resolve to the lowest id.
var Algorithms = []Algorithm{Store, Zlib, LZMA, Brotli, Zstd}

// Valid reports whether a is a recognized algorithm identifier.
func (a Algorithm) Valid() bool {
	return a <= Zstd
}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Store:
		return "store"
	case Zlib:
		return "zlib"
	case LZMA:
		return "lzma"
	case Brotli:
		return "brotli"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", byte(a))
	}
}

// EstimatedRatio returns a rough compressed/original size estimate for
// typical text-like input. Reporting only: selection always measures real
// output sizes.
func (a Algorithm) EstimatedRatio() float64 {
	switch a {
	case Zlib:
		return 0.6
	case LZMA:
		return 0.4
	case Brotli:
		return 0.5
	case Zstd:
		return 0.55
	default:
		return 1.0
	}
}

// Compress applies a to data at the given level.
func Compress(a Algorithm, data []byte, level int) ([]byte, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	switch a {
	case Store:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case Zlib:
		return zlibCompress(data, level)
	case LZMA:
		return lzmaCompress(data, level)
	case Brotli:
		return brotliCompress(data, level)
	case Zstd:
		return zstdCompress(data, level)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, byte(a))
	}
}

// Decompress reverses a on data. The algorithm comes from the envelope
// header, not from sniffing the payload. Decoder rejections are reported as
// ErrCorrupt.
func Decompress(a Algorithm, data []byte) ([]byte, error) {
	switch a {
	case Store:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case Zlib:
		return zlibDecompress(data)
	case LZMA:
		return lzmaDecompress(data)
	case Brotli:
		return brotliDecompress(data)
	case Zstd:
		return zstdDecompress(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, byte(a))
	}
}

// AutoSelect compresses data with every supported algorithm at the given
// level and returns the smallest output. A candidate that fails to compress
// is excluded from the comparison rather than reported. Store always
// succeeds, so the result never expands the input.
func AutoSelect(data []byte, level int) (Algorithm, []byte, error) {
	if level < MinLevel || level > MaxLevel {
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	best := Store
	bestOut, err := Compress(Store, data, level)
	if err != nil {
		return 0, nil, err
	}

	for _, a := range Algorithms[1:] {
		out, err := Compress(a, data, level)
		if err != nil {
			continue
		}
		if len(out) < len(bestOut) {
			best = a
			bestOut = out
		}
	}

	return best, bestOut, nil
}

func zlibCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibDecompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
	}
	return out, nil
}

func lzmaCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	// Dictionary capacity scales with level: 32 KiB at level 1 up to
	// 8 MiB at level 9, the default reader capacity.
	cfg := lzma.WriterConfig{DictCap: 1 << (14 + uint(level))}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lzmaDecompress(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", ErrCorrupt, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", ErrCorrupt, err)
	}
	return out, nil
}

func brotliCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	// Brotli quality runs 0-11; map 1-9 onto 2-10 so level 9 stays below
	// the pathologically slow maximum.
	w := brotli.NewWriterLevel(&buf, level+1)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliDecompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: brotli: %v", ErrCorrupt, err)
	}
	return out, nil
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 2:
		return zstd.SpeedFastest
	case level <= 5:
		return zstd.SpeedDefault
	case level <= 7:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func zstdCompress(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func zstdDecompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
	}
	return out, nil
}
