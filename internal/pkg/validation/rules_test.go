package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRollNumber(t *testing.T) {
	valid := []string{"CS-1021", "BBA-2023-17", "ee-42"}
	for _, rn := range valid {
		assert.True(t, IsValidRollNumber(rn), "expected %q to be valid", rn)
	}

	invalid := []string{"", "1021", "CS 1021", "CS-", "C-1", "TOOLONGPREFIX-1"}
	for _, rn := range invalid {
		assert.False(t, IsValidRollNumber(rn), "expected %q to be invalid", rn)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Jo"))
	assert.False(t, IsValidName("J"))
}
