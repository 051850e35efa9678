package humankey

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRCodePNG renders the address as a PNG QR code
func QRCodePNG(address string) ([]byte, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// GenerateQRCode generates QR code of address in base64
func GenerateQRCode(address string) (string, error) {
	png, err := QRCodePNG(address)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// QRCodeDataURL returns the QR code as an image data URL for <img src>
func QRCodeDataURL(address string) (string, error) {
	b64, err := GenerateQRCode(address)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + b64, nil
}
