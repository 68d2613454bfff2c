package lib

import (
	"bytes"
	"log"

	"github.com/yeqown/go-qrcode"
)

// QRCodeImage renders the payload into a JPEG image.
func QRCodeImage(payload string) ([]byte, error) {
	qrc, err := qrcode.New(payload)
	if err != nil {
		log.Printf("Error creating qrcode: %s\n", err.Error())
		return nil, err
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		log.Printf("Could not write qrcode image: %s\n", err.Error())
		return nil, err
	}
	return buf.Bytes(), nil
}

// QRGenerator satisfies the store's QREncoder interface.
type QRGenerator struct{}

func NewQRGenerator() *QRGenerator { return &QRGenerator{} }

func (g *QRGenerator) Encode(payload string) ([]byte, error) {
	return QRCodeImage(payload)
}
