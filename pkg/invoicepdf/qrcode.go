package invoicepdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// QREncoder turns text into a PNG image.
type QREncoder interface {
	Encode(content string) ([]byte, error)
}

// PNGEncoder encodes with skip2/go-qrcode at medium error correction.
type PNGEncoder struct {
	// Pixels is the side of the generated PNG. Defaults to 256.
	Pixels int
}

// Encode implements QREncoder.
func (e PNGEncoder) Encode(content string) ([]byte, error) {
	size := e.Pixels
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// VerificationURL joins the verification base path and the bill ID.
func VerificationURL(base, id string) string {
	if base == "" {
		return id
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + id
}

// qrEmbedder places an encoded verification image in the footer.
type qrEmbedder struct {
	encoder QREncoder
}

func (q qrEmbedder) encode(url string) ([]byte, error) {
	png, err := q.encoder.Encode(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRCode, err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrQRCode)
	}
	return png, nil
}

// place centres a size x size image in the column spanning [left, right] and
// the band [top, top+height].
func (q qrEmbedder) place(pdf *fpdf.Fpdf, png []byte, left, right, top, height, size float64) (Rect, error) {
	r := Rect{
		X: left + (right-left-size)/2,
		Y: top + (height-size)/2,
		W: size,
		H: size,
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(png))
	if err := pdf.Error(); err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrQRCode, err)
	}
	pdf.ImageOptions("verification-qr", r.X, r.Y, r.W, r.H, false, opts, 0, "")
	return r, nil
}
