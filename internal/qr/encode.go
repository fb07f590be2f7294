package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Encode renders text as a PNG QR code and returns it as a base64 data-URI,
// the one representation stored and served everywhere.
func Encode(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, imageSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
