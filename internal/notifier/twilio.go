package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

const maxErrorBody = 2048

// TwilioGateway sends codes through the Twilio Messages API.
type TwilioGateway struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	appName    string
	ttlMinutes int
	client     *http.Client
	log        *zap.Logger
}

func NewTwilioGateway(cfg utils.SMSConfig, appName string, otpTTL time.Duration, log *zap.Logger) *TwilioGateway {
	return &TwilioGateway{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromNumber: cfg.TwilioFromNumber,
		baseURL:    strings.TrimRight(cfg.TwilioBaseURL, "/"),
		appName:    appName,
		ttlMinutes: int(otpTTL.Minutes()),
		client:     &http.Client{Timeout: cfg.Timeout()},
		log:        log,
	}
}

func (g *TwilioGateway) Send(ctx context.Context, mobile, code, purpose string) Result {
	if g.accountSID == "" || g.authToken == "" || g.fromNumber == "" {
		return g.fail("Twilio is selected but credentials are missing. Set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, and TWILIO_FROM_NUMBER.")
	}

	start := time.Now()

	form := url.Values{}
	form.Set("To", mobile)
	form.Set("From", g.fromNumber)
	form.Set("Body", fmt.Sprintf("Your %s %s OTP is %s. Valid for %d minutes.", g.appName, purpose, code, g.ttlMinutes))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.baseURL, url.PathEscape(g.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return g.fail(fmt.Sprintf("Twilio request failed: %v", err))
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("Twilio HTTP error",
			zap.String("mobile", utils.MaskMobile(mobile)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return g.fail(fmt.Sprintf("Twilio request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		g.log.Warn("Twilio rejected message",
			zap.String("mobile", utils.MaskMobile(mobile)),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", body))
		return g.fail(fmt.Sprintf("Twilio SMS failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	g.log.Info("OTP SMS sent",
		zap.String("channel", ChannelTwilio),
		zap.String("purpose", purpose),
		zap.String("mobile", utils.MaskMobile(mobile)),
		zap.Duration("duration", time.Since(start)))

	return Result{Delivered: true, Channel: ChannelTwilio}
}

func (g *TwilioGateway) fail(detail string) Result {
	return Result{Delivered: false, Channel: ChannelTwilio, Detail: detail}
}
