package sealbox

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// SealFile reads the file at inPath, seals its contents, and writes the
// blob to outPath. The output write is atomic: outPath either holds a
// complete blob or is untouched.
func (s *Sealer) SealFile(inPath, outPath string) error {
	plaintext, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	blob, err := s.Seal(plaintext)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(outPath, bytes.NewReader(blob)); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// OpenFile reads the sealed blob at inPath, opens it, and writes the
// plaintext to outPath atomically.
func (s *Sealer) OpenFile(inPath, outPath string) error {
	blob, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	plaintext, err := s.Open(blob)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(outPath, bytes.NewReader(plaintext)); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
