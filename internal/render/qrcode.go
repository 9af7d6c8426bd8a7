package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const DefaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qrCode.Image(qrSize(sizePx)), nil
}

// QRCodePNG encodes the QR code for payload as PNG bytes.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, qrSize(sizePx))
}

func qrSize(sizePx int) int {
	if sizePx <= 0 {
		return DefaultQRCodeSizePx
	}
	return sizePx
}
