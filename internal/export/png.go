package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultFilename is the name offered for browser downloads.
const DefaultFilename = "pattern.png"

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveFile writes img to path. The file is written next to the target and
// renamed into place, so readers never see a partial image.
func SaveFile(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".pattern-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WritePNG(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// TimestampedName returns a file name like pattern-20240102-150405.png.
func TimestampedName(now time.Time) string {
	return "pattern-" + now.Format("20060102-150405") + ".png"
}

// maxSuffix bounds the search for a free name within one second.
const maxSuffix = 1000

// FreePath returns a path in dir for an export taken at now that no existing
// file uses: the timestamped name, or that name with a -2, -3, ... suffix.
// Callers serialize exports so the name stays free until SaveFile.
func FreePath(dir string, now time.Time) (string, error) {
	base := TimestampedName(now)
	stem := base[:len(base)-len(filepath.Ext(base))]
	for n := 1; n <= maxSuffix; n++ {
		name := base
		if n > 1 {
			name = stem + "-" + strconv.Itoa(n) + ".png"
		}
		path := filepath.Join(dir, name)
		// Any other Lstat error resurfaces from SaveFile.
		if _, err := os.Lstat(path); err != nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", base, dir)
}
