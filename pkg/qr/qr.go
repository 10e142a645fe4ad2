package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the QR PNG edge length in pixels
const DefaultSize = 256

// EncodeDataURL renders the given content as a QR PNG and returns it as a
// base64 data URL suitable for direct embedding in an <img> tag.
func EncodeDataURL(content string, size int) (string, error) {
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
