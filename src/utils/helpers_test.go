package utils

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testKeyHex = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestEncryptDecryptRoundtrip(t *testing.T) {
	key, err := hex.DecodeString(testKeyHex)
	assert.NoError(t, err)

	enc, err := EncryptMessage(key, "hello world")
	assert.NoError(t, err)
	assert.NotEqual(t, "hello world", enc)

	dec, err := DecryptMessage(key, enc)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", *dec)
}

func TestDecryptRejectsShortCipherText(t *testing.T) {
	key, _ := hex.DecodeString(testKeyHex)
	_, err := DecryptMessage(key, "abcd")
	assert.Error(t, err)
}

func TestTicketQRPayloadRoundtrip(t *testing.T) {
	os.Setenv("API_QRC_SECRET", testKeyHex)

	orderID := uuid.New()
	code, err := TicketQRPayload(42, orderID)
	assert.NoError(t, err)
	assert.NotEmpty(t, code)

	ticketID, err := OpenTicketQRPayload(code)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), ticketID)
}

func TestTicketQRPayloadsAreUnique(t *testing.T) {
	os.Setenv("API_QRC_SECRET", testKeyHex)

	orderID := uuid.New()
	a, err := TicketQRPayload(42, orderID)
	assert.NoError(t, err)
	b, err := TicketQRPayload(42, orderID)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
