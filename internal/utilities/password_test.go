package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
		reason   string
	}{
		{"abc", false, "8 characters"},
		{"abcdefgh", false, "uppercase"},
		{"ABCDEFGH", false, "lowercase"},
		{"Abcdefgh", false, "digit"},
		{"Abcdef12", true, ""},
		{"Str0ngEnough!", true, ""},
	}

	for _, tc := range cases {
		reason, ok := ValidatePasswordStrength(tc.password)
		assert.Equal(t, tc.ok, ok, "password %q", tc.password)
		if !tc.ok {
			assert.Contains(t, reason, tc.reason, "password %q", tc.password)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("Abcdef12")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef12", hashed)

	assert.True(t, VerifyPassword("Abcdef12", hashed))
	assert.False(t, VerifyPassword("Abcdef13", hashed))
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode(6)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
	}
}

func TestGenerateTempPassword_length(t *testing.T) {
	assert.Len(t, GenerateTempPassword(12), 12)
}
