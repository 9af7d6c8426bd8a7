package render

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 100)
	if err != nil || img != nil {
		t.Fatalf("empty payload = %v, %v; want nil, nil", img, err)
	}

	img, err = GenerateQRCodeImage("http://192.168.1.20/", 120)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Errorf("bounds = %v, want 120x120", b)
	}

	img, err = GenerateQRCodeImage("http://localhost/", 0)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != DefaultQRCodeSizePx {
		t.Errorf("default size = %d", b.Dx())
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("http://localhost:8080/", 64)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}
