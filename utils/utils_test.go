package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayCodes(t *testing.T) {
	ticket := NewTicketCode()
	assert.Regexp(t, regexp.MustCompile(`^TKT-[0-9A-F-]{10}$`), ticket)

	booking := NewBookingCode()
	assert.Regexp(t, regexp.MustCompile(`^BKG-[0-9A-F]{8}$`), booking)

	payment := NewPaymentCode()
	assert.Regexp(t, regexp.MustCompile(`^PAY_\d{8}_[0-9A-F]{6}$`), payment)

	assert.NotEqual(t, NewBookingCode(), NewBookingCode())
	assert.NotEqual(t, NewTicketCode(), NewTicketCode())
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("TKT-ABCDEF1234", 256)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("hello")
	require.NotNil(t, p)
	assert.Equal(t, "hello", *p)
}

func TestPtr(t *testing.T) {
	n := Ptr(42)
	require.NotNil(t, n)
	assert.Equal(t, 42, *n)
}
