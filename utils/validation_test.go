package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "919876543210", "09876543210", "98765 43210", "+91-98765-43210"}
	for _, phone := range valid {
		ok, err := ValidatePhone(phone)
		assert.True(t, ok, phone)
		assert.NoError(t, err, phone)
	}

	invalid := []string{"", "12345", "5876543210", "+849876543210", "98765432101"}
	for _, phone := range invalid {
		ok, err := ValidatePhone(phone)
		assert.False(t, ok, phone)
		assert.Error(t, err, phone)
	}
}

func TestValidatePincode(t *testing.T) {
	ok, err := ValidatePincode("411001")
	assert.True(t, ok)
	assert.NoError(t, err)

	for _, pin := range []string{"011001", "41100", "4110011", "41100a"} {
		ok, err := ValidatePincode(pin)
		assert.False(t, ok, pin)
		assert.Error(t, err, pin)
	}
}

func TestValidateIFSC(t *testing.T) {
	for _, code := range []string{"SBIN0001234", "hdfc0abc123"} {
		ok, err := ValidateIFSC(code)
		assert.True(t, ok, code)
		assert.NoError(t, err, code)
	}

	for _, code := range []string{"SBIN1001234", "SBI00001234", "SBIN000123"} {
		ok, _ := ValidateIFSC(code)
		assert.False(t, ok, code)
	}
}

func TestValidateEmail(t *testing.T) {
	ok, err := ValidateEmail("ramesh.patil@example.in")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = ValidateEmail("ramesh@")
	assert.False(t, ok)
	assert.Error(t, err)
}
