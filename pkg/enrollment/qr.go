package enrollment

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the image size in pixels used when no size is given.
const DefaultQRSize = 256

// QRCode renders the provisioning URI as a PNG image. It is only available
// while the secret is issued and unconfirmed.
func (e *Enrollment) QRCode(size int) ([]byte, error) {
	if e.State != StateSecretIssued {
		return nil, ErrSecretNotIssued
	}
	return generateQR(e.URI, size)
}

// QRCodeDataURI renders the QR code as a data URI for an <img> tag.
func (e *Enrollment) QRCodeDataURI(size int) (string, error) {
	png, err := e.QRCode(size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func generateQR(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCodeFailed, err)
	}
	return png, nil
}
