package request

import "strings"

type SignupOTPRequest struct {
	Name    string `json:"name" validate:"required"`
	Mobile  string `json:"mobile" validate:"required"`
	Address string `json:"address" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

// Trim removes surrounding whitespace from every field
func (r *SignupOTPRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.Address = strings.TrimSpace(r.Address)
	r.Pincode = strings.TrimSpace(r.Pincode)
}

type LoginOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp" validate:"required,len=6,digits"`
}

func (r *VerifyOTPRequest) Trim() {
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.OTP = strings.TrimSpace(r.OTP)
}
