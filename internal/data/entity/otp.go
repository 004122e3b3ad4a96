package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

type OTPPurpose string

const (
	OTPPurposeSignup OTPPurpose = "signup"
	OTPPurposeLogin  OTPPurpose = "login"
)

func (p OTPPurpose) Valid() bool {
	return p == OTPPurposeSignup || p == OTPPurposeLogin
}

// OTP is one issued code. Payload is raw JSON and only set for signup codes.
type OTP struct {
	ID        int64      `db:"id"`
	Mobile    string     `db:"mobile"`
	Code      string     `db:"otp"`
	Purpose   OTPPurpose `db:"purpose"`
	Payload   []byte     `db:"payload_json"`
	IsUsed    bool       `db:"is_used"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// ValidAt reports whether the code can still be redeemed at now.
func (o *OTP) ValidAt(now time.Time) bool {
	return !o.IsUsed && o.ExpiresAt.After(now)
}

// PendingProfile is the signup form kept inside the OTP payload until the
// code is verified.
type PendingProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}

func (p PendingProfile) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// DecodePendingProfile reads a signup payload.
func DecodePendingProfile(payload []byte) (PendingProfile, error) {
	var profile PendingProfile
	if len(payload) == 0 {
		return profile, fmt.Errorf("empty signup payload")
	}
	if err := json.Unmarshal(payload, &profile); err != nil {
		return profile, fmt.Errorf("decode signup payload: %w", err)
	}
	if profile.Name == "" || profile.Address == "" || profile.Pincode == "" {
		return profile, fmt.Errorf("incomplete signup payload")
	}
	return profile, nil
}
