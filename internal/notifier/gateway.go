// Package notifier delivers OTP codes to users over a configured channel.
package notifier

import (
	"context"
	"strings"
	"time"

	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

const (
	ChannelMock   = "mock"
	ChannelTwilio = "twilio"
)

// Result is the outcome of one delivery attempt. DevCode is only ever set by
// the mock channel, which echoes the code back so a developer can use it.
type Result struct {
	Delivered bool
	Channel   string
	Detail    string
	DevCode   string
}

// Gateway sends a code to a canonical mobile number. Implementations never
// return errors; failures are reported through Result.
type Gateway interface {
	Send(ctx context.Context, mobile, code, purpose string) Result
}

// New picks the gateway named by cfg.Provider.
func New(cfg utils.SMSConfig, appName string, otpTTL time.Duration, log *zap.Logger) Gateway {
	log = log.With(zap.String("component", "notifier"))

	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case ChannelMock:
		return NewMockGateway(log)
	case ChannelTwilio:
		return NewTwilioGateway(cfg, appName, otpTTL, log)
	default:
		log.Warn("Unsupported SMS provider configured", zap.String("provider", provider))
		return unsupportedGateway{provider: provider}
	}
}

type unsupportedGateway struct {
	provider string
}

func (g unsupportedGateway) Send(ctx context.Context, mobile, code, purpose string) Result {
	return Result{
		Delivered: false,
		Channel:   g.provider,
		Detail:    "Unsupported SMS provider '" + g.provider + "'. Use SMS_PROVIDER=mock or SMS_PROVIDER=twilio.",
	}
}
