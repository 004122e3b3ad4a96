package response

import (
	"time"

	"nutriverse-auth/internal/data/entity"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// OTPSentResponse is returned by both request-otp endpoints. DevOTP is only
// filled when the mock delivery channel is active.
type OTPSentResponse struct {
	Message  string `json:"message"`
	Mobile   string `json:"mobile"`
	DevOTP   string `json:"devOtp,omitempty"`
	Provider string `json:"provider"`
}

type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// NotRegisteredResponse tells the client to offer signup instead.
type NotRegisteredResponse struct {
	Message    string `json:"message"`
	ShowSignup bool   `json:"showSignup"`
}

type HealthResponse struct {
	OK bool   `json:"ok"`
	DB string `json:"db"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address"`
	Pincode   string    `json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Mobile:    user.Mobile,
		Address:   user.Address,
		Pincode:   user.Pincode,
		CreatedAt: user.CreatedAt,
	}
}
