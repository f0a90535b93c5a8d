package sealbox

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Encoding errors.
var (
	// ErrInvalidCharset is returned when a charset has fewer than two
	// characters or contains duplicates.
	ErrInvalidCharset = errors.New("invalid charset")

	// ErrInvalidEncoding is returned when decoded text contains a
	// character outside the charset.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Encoding is a base-N codec over an arbitrary character set. It turns raw
// bytes — typically a sealed blob — into text that uses only the charset's
// characters, for transport through text-only channels. The encoding is not
// part of the blob format; both sides must agree on the charset.
type Encoding struct {
	charset []rune
	index   map[rune]int
}

// NewEncoding builds an Encoding from charset. The charset must contain at
// least two distinct characters; order defines digit values.
func NewEncoding(charset string) (*Encoding, error) {
	runes := []rune(charset)
	if len(runes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 characters, got %d", ErrInvalidCharset, len(runes))
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("%w: duplicate character %q", ErrInvalidCharset, r)
		}
		index[r] = i
	}

	return &Encoding{charset: runes, index: index}, nil
}

// Encode converts data to text over the charset. Leading zero bytes are
// preserved as leading zero-value characters, so Decode restores the input
// byte-exactly.
func (e *Encoding) Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	base := big.NewInt(int64(len(e.charset)))
	n := new(big.Int).SetBytes(data)
	mod := new(big.Int)

	var digits []rune
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, e.charset[mod.Int64()])
	}

	var b strings.Builder
	for i := 0; i < zeros; i++ {
		b.WriteRune(e.charset[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteRune(digits[i])
	}
	return b.String()
}

// Decode reverses Encode.
func (e *Encoding) Decode(text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	zeros := 0
	for zeros < len(runes) && runes[zeros] == e.charset[0] {
		zeros++
	}

	base := big.NewInt(int64(len(e.charset)))
	n := new(big.Int)
	for _, r := range runes {
		d, ok := e.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: character %q not in charset", ErrInvalidEncoding, r)
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(d)))
	}

	out := make([]byte, zeros)
	return append(out, n.Bytes()...), nil
}
