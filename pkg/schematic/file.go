package schematic

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/klauspost/compress/zstd"
)

const (
	// FileExtension is the extension of uncompressed schematic files.
	FileExtension = ".schem"
	// CompressedSuffix marks files whose encoded stream is wrapped in zstd.
	CompressedSuffix = ".zst"
)

// IsCompressed reports whether path names a zstd wrapped schematic.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}

// WriteFile encodes s to path, replacing any existing file only once the
// new one is complete. A path ending in CompressedSuffix is zstd compressed.
func WriteFile(path string, s *Schematic) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, s, IsCompressed(path)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename schematic file: %v", err)
	}
	return nil
}

func write(w io.Writer, s *Schematic, compress bool) error {
	if !compress {
		return Encode(w, s)
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if err := Encode(zw, s); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return nil
}

// ReadFile decodes the schematic stored at path. See Decode.
func ReadFile(path string, worlds world.Lookup) (*Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schematic file: %w", err)
	}
	defer f.Close()

	if !IsCompressed(path) {
		return Decode(f, worlds)
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer zr.Close()
	return Decode(zr, worlds)
}
