package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
)

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	encodedString := hex.EncodeToString(cipherText)

	return encodedString, nil
}

func DecryptMessage(key []byte, message string) (*string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(cipherText) < gcm.NonceSize() {
		return nil, errors.New("cipher text is too short")
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	decodedString := string(decryptedData)

	return &decodedString, nil
}

// TicketQRPayload builds the opaque token embedded in a ticket's QR code.
// The token is an AES-GCM sealed JSON blob keyed by API_QRC_SECRET; only
// the check-in endpoint can open it.
func TicketQRPayload(ticketID uint, orderID uuid.UUID) (string, error) {
	raw := map[string]any{
		"ticketId": ticketID,
		"orderId":  orderID.String(),
		"nonce":    uuid.NewString(),
	}
	rawBytes, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	key, err := hex.DecodeString(os.Getenv("API_QRC_SECRET"))
	if err != nil {
		return "", err
	}
	return EncryptMessage(key, string(rawBytes))
}

// OpenTicketQRPayload reverses TicketQRPayload and returns the ticket id.
func OpenTicketQRPayload(code string) (uint, error) {
	key, err := hex.DecodeString(os.Getenv("API_QRC_SECRET"))
	if err != nil {
		return 0, err
	}
	dec, err := DecryptMessage(key, code)
	if err != nil {
		return 0, err
	}
	var raw struct {
		TicketID uint `json:"ticketId"`
	}
	if err := json.Unmarshal([]byte(*dec), &raw); err != nil {
		return 0, err
	}
	return raw.TicketID, nil
}
