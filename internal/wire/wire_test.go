package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nutriverse-auth/internal/data/repository"
	"nutriverse-auth/internal/notifier"
	"nutriverse-auth/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testMobile = "+919876543210"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type downStore struct{}

func (downStore) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

type failingGateway struct{}

func (failingGateway) Send(ctx context.Context, mobile, code, purpose string) notifier.Result {
	return notifier.Result{Delivered: false, Channel: notifier.ChannelTwilio, Detail: "Twilio SMS failed with status 503"}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:      utils.AppConfig{Name: "NutriVerse", CORSOrigins: []string{"*"}},
		Database: utils.DatabaseConfig{Driver: utils.DriverMemory},
		JWT:      utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
		OTP:      utils.OTPConfig{TTLMinutes: 5, CountryCode: "91"},
		SMS:      utils.SMSConfig{Provider: notifier.ChannelMock, TimeoutSeconds: 5},
	}
}

type testServer struct {
	t     *testing.T
	app   *App
	clock *testClock
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	log := zaptest.NewLogger(t)
	clock := &testClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	app := Wiring(repository.NewMemoryRepository(log), testConfig(), log, opts...)

	return &testServer{t: t, app: app, clock: clock}
}

func (s *testServer) do(method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	var payload *bytes.Reader
	switch b := body.(type) {
	case nil:
		payload = bytes.NewReader(nil)
	case string:
		payload = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func signupBody() map[string]string {
	return map[string]string{
		"name":    "Asha Rao",
		"mobile":  "98765 43210",
		"address": "12 MG Road, Bengaluru",
		"pincode": "560001",
	}
}

// signup registers the test user through the HTTP API.
func (s *testServer) signup() {
	s.t.Helper()

	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", signupBody(), "")
	require.Equal(s.t, http.StatusOK, rec.Code, body)

	rec, body = s.do(http.MethodPost, "/api/auth/signup/verify-otp",
		map[string]string{"mobile": testMobile, "otp": body["devOtp"].(string)}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, body)
}

func (s *testServer) login() map[string]any {
	s.t.Helper()

	rec, body := s.do(http.MethodPost, "/api/auth/login/request-otp", map[string]string{"mobile": testMobile}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, body)

	rec, body = s.do(http.MethodPost, "/api/auth/login/verify-otp",
		map[string]string{"mobile": testMobile, "otp": body["devOtp"].(string)}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, body)
	return body
}

func TestSignupLoginAndProfile(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", signupBody(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent for signup verification.", body["message"])
	assert.Equal(t, testMobile, body["mobile"])
	assert.Equal(t, "mock", body["provider"])
	code := body["devOtp"].(string)
	assert.Len(t, code, 6)

	rec, body = s.do(http.MethodPost, "/api/auth/signup/verify-otp", map[string]string{"mobile": testMobile, "otp": code}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Signup successful. Please login with mobile OTP.", body["message"])

	login := s.login()
	assert.Equal(t, "Login successful.", login["message"])
	token := login["token"].(string)
	require.NotEmpty(t, token)
	user := login["user"].(map[string]any)
	assert.Equal(t, testMobile, user["mobile"])
	assert.Equal(t, "Asha Rao", user["name"])
	assert.Contains(t, user, "created_at")

	rec, body = s.do(http.MethodGet, "/api/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body["user"].(map[string]any)
	assert.Equal(t, user["id"], profile["id"])
	assert.Equal(t, "560001", profile["pincode"])
	assert.Equal(t, "12 MG Road, Bengaluru", profile["address"])
}

func TestLoginUnknownMobileOffersSignup(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/api/auth/login/request-otp", map[string]string{"mobile": "9876543210"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", body["message"])
	assert.Equal(t, true, body["showSignup"])
}

func TestExpiredLoginOTP(t *testing.T) {
	s := newTestServer(t)
	s.signup()

	rec, body := s.do(http.MethodPost, "/api/auth/login/request-otp", map[string]string{"mobile": testMobile}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	s.clock.Advance(6 * time.Minute)

	rec, body = s.do(http.MethodPost, "/api/auth/login/verify-otp",
		map[string]string{"mobile": testMobile, "otp": body["devOtp"].(string)}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP.", body["message"])
}

func TestSignupOTPCannotBeReused(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", signupBody(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	verify := map[string]string{"mobile": testMobile, "otp": body["devOtp"].(string)}

	rec, _ = s.do(http.MethodPost, "/api/auth/signup/verify-otp", verify, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = s.do(http.MethodPost, "/api/auth/signup/verify-otp", verify, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP.", body["message"])
}

func TestSignupTwiceConflicts(t *testing.T) {
	s := newTestServer(t)
	s.signup()

	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", signupBody(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists. Please login.", body["message"])
}

func TestSignupValidationMessages(t *testing.T) {
	s := newTestServer(t)

	missing := signupBody()
	delete(missing, "address")
	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", missing, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are mandatory.", body["message"])

	badMobile := signupBody()
	badMobile["mobile"] = "+1 555 0100"
	rec, body = s.do(http.MethodPost, "/api/auth/signup/request-otp", badMobile, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Mobile number must be in +91XXXXXXXXXX format.", body["message"])

	longName := signupBody()
	longName["name"] = strings.Repeat("a", 121)
	rec, body = s.do(http.MethodPost, "/api/auth/signup/request-otp", longName, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name must be at most 120 characters.", body["message"])

	badPincode := signupBody()
	badPincode["pincode"] = "5600"
	rec, body = s.do(http.MethodPost, "/api/auth/signup/request-otp", badPincode, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Pincode must be exactly 6 digits.", body["message"])

	rec, body = s.do(http.MethodPost, "/api/auth/signup/verify-otp", map[string]string{"mobile": testMobile, "otp": "12"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid mobile and 6-digit OTP are required.", body["message"])
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/api/auth/signup/request-otp",
		"/api/auth/signup/verify-otp",
		"/api/auth/login/request-otp",
		"/api/auth/login/verify-otp",
	} {
		rec, body := s.do(http.MethodPost, path, "{not json", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "Invalid request body.", body["message"], path)
	}
}

func TestDeliveryFailure(t *testing.T) {
	s := newTestServer(t, WithGateway(failingGateway{}))

	rec, body := s.do(http.MethodPost, "/api/auth/signup/request-otp", signupBody(), "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Unable to deliver OTP right now. Please try again shortly.", body["message"])
	assert.NotContains(t, body, "devOtp")

	rec, body = s.do(http.MethodPost, "/api/auth/signup/verify-otp", map[string]string{"mobile": testMobile, "otp": "123456"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP.", body["message"])
}

func TestProfileRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing auth token.", body["message"])

	rec, body = s.do(http.MethodGet, "/api/auth/profile", nil, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token.", body["message"])
}

func TestProfileRejectsTamperedSignature(t *testing.T) {
	s := newTestServer(t)
	s.signup()
	token := s.login()["token"].(string)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	rec, body := s.do(http.MethodGet, "/api/auth/profile", nil, tampered)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token.", body["message"])

	rec, _ = s.do(http.MethodGet, "/api/auth/profile", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileTokenExpires(t *testing.T) {
	s := newTestServer(t)
	s.signup()
	token := s.login()["token"].(string)

	s.clock.Advance(169 * time.Hour)

	rec, body := s.do(http.MethodGet, "/api/auth/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token.", body["message"])
}

func TestProfileForUnknownUser(t *testing.T) {
	s := newTestServer(t)

	token, _, err := s.app.Tokens.Issue(99, testMobile)
	require.NoError(t, err)

	rec, body := s.do(http.MethodGet, "/api/auth/profile", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", body["message"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["db"])
}

func TestHealthStoreDown(t *testing.T) {
	log := zaptest.NewLogger(t)
	repo := repository.NewMemoryRepository(log)
	repo.Store = downStore{}

	app := Wiring(repo, testConfig(), log)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"db":"disconnected"}`, rec.Body.String())
}
