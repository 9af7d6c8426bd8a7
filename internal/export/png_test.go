package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{B: 200, A: 128})
	return img
}

func TestWritePNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := decoded.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", decoded)
	}
	if diff := cmp.Diff(testImage().Pix, got.Pix); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")
	if err := SaveFile(path, testImage()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the image", len(entries))
	}
}

func TestSaveFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SaveFile(path, testImage()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("file was not replaced with a PNG")
	}
}

func TestTimestampedName(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if got, want := TimestampedName(now), "pattern-20240102-150405.png"; got != want {
		t.Errorf("TimestampedName = %q, want %q", got, want)
	}
}

func TestFreePathAddsSuffix(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	var got []string
	for i := 0; i < 3; i++ {
		path, err := FreePath(dir, now)
		if err != nil {
			t.Fatal(err)
		}
		if err := SaveFile(path, testImage()); err != nil {
			t.Fatal(err)
		}
		got = append(got, filepath.Base(path))
	}
	want := []string{"pattern-20240102-150405.png", "pattern-20240102-150405-2.png", "pattern-20240102-150405-3.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestFreePathMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	path, err := FreePath(dir, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "pattern-20240102-150405.png"); path != want {
		t.Errorf("FreePath = %q, want %q", path, want)
	}
}
