package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+254712345678", "254 712 345 678", "(254) 712-345-678", "712345678"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}
	invalid := []string{"", "+", "+12", "123456", "0712345678", "call me", "+25471234567890123"}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+254712345678", NormalizePhone("0712 345 678", "254"))
	assert.Equal(t, "+254712345678", NormalizePhone("+254-712-345-678", "254"))
	assert.Equal(t, "0", NormalizePhone("0", "254"))
}

func TestValidateLocalOrInternationalPhone(t *testing.T) {
	for _, p := range []string{"0712 345 678", "0110-123-456", "+254712345678", "254712345678"} {
		assert.True(t, ValidateLocalOrInternationalPhone(p), p)
	}
	for _, p := range []string{"", "0", "00712345678", "call me", "07"} {
		assert.False(t, ValidateLocalOrInternationalPhone(p), p)
	}
}

func TestWhatsAppNumber(t *testing.T) {
	assert.Equal(t, "254712345678", WhatsAppNumber("+254 712 345 678"))
	assert.Equal(t, "254712345678", WhatsAppNumber("254-712-345-678"))
}
