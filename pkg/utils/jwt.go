package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID int64  `json:"userId"`
	Mobile string `json:"mobile"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens with a process-wide secret.
type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func NewTokenManager(secretKey string, duration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: duration,
		now:           time.Now,
	}
}

// WithClock returns a copy of the manager that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *m
	clone.now = now
	return &clone
}

// Issue mints a token bound to the user id and canonical mobile number.
func (m *TokenManager) Issue(userID int64, mobile string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.tokenDuration)

	claims := SessionClaims{
		UserID: userID,
		Mobile: mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the decoded claims.
// Every failure is reported as ErrInvalidToken wrapping the parser error.
func (m *TokenManager) Verify(tokenStr string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 || claims.Mobile == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
