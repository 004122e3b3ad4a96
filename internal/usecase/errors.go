package usecase

import "errors"

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidOTP        = errors.New("invalid or expired OTP")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrDeliveryFailed    = errors.New("OTP delivery failed")
)

// Error is a rejection the client is allowed to see. Message is returned
// verbatim; Detail is for logs only.
type Error struct {
	Kind    error
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + " (" + e.Detail + ")"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

const (
	msgFieldsRequired   = "All fields are mandatory."
	msgNameLength       = "Name must be at most 120 characters."
	msgAddressLength    = "Address must be at most 255 characters."
	msgSignupMobile     = "Mobile number must be in +91XXXXXXXXXX format."
	msgPincode          = "Pincode must be exactly 6 digits."
	msgAlreadyExists    = "User already exists. Please login."
	msgDeliveryFailed   = "Unable to deliver OTP right now. Please try again shortly."
	msgVerifyShape      = "Valid mobile and 6-digit OTP are required."
	msgInvalidOTP       = "Invalid or expired OTP."
	msgLoginMobile      = "Enter a valid +91 mobile number."
	msgUserNotFound     = "User not found."
	msgSignupOTPSent    = "OTP sent for signup verification."
	msgSignupSuccessful = "Signup successful. Please login with mobile OTP."
	msgLoginOTPSent     = "OTP sent for login."
	msgLoginSuccessful  = "Login successful."
)
