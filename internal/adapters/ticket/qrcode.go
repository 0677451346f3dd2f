package ticket

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"eventbooking/internal/domain"
)

const defaultQRSize = 256

type qrRenderer struct {
	size int
}

// NewQRRenderer returns a TicketRenderer that encodes content as a square PNG QR code of size pixels.
func NewQRRenderer(size int) domain.TicketRenderer {
	if size <= 0 {
		size = defaultQRSize
	}
	return &qrRenderer{size: size}
}

func (r *qrRenderer) RenderPNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	png, err := qrcode.Encode(content, qrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
