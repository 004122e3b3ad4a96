package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		code, err := GenerateOTP(OTPLength)
		require.NoError(t, err)
		assert.Len(t, code, OTPLength)
		assert.True(t, IsDigits(code), "code %q must be digits only", code)
		seen[code] = struct{}{}
	}

	// 200 draws from a million values should almost never collide much
	assert.Greater(t, len(seen), 190)
}

func TestGenerateOTPDefaultsLength(t *testing.T) {
	code, err := GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, OTPLength)
}

func TestGenerateOTPCustomLength(t *testing.T) {
	code, err := GenerateOTP(4)
	require.NoError(t, err)
	assert.Len(t, code, 4)
	assert.True(t, IsDigits(code))
}
