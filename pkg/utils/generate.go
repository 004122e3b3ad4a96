package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ==================== OTP ====================

const OTPLength = 6

// GenerateOTP returns a uniformly random numeric code of the given length.
// Leading zeros are kept, so "000042" is as likely as "999999".
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = OTPLength
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("read random source: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}
