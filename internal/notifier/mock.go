package notifier

import (
	"context"

	"go.uber.org/zap"
)

// MockGateway writes codes to the log instead of sending them. Development only.
type MockGateway struct {
	log *zap.Logger
}

func NewMockGateway(log *zap.Logger) *MockGateway {
	return &MockGateway{log: log}
}

func (g *MockGateway) Send(ctx context.Context, mobile, code, purpose string) Result {
	g.log.Info("[OTP:"+purpose+"] "+mobile+" => "+code,
		zap.String("channel", ChannelMock),
		zap.String("purpose", purpose),
	)

	return Result{
		Delivered: true,
		Channel:   ChannelMock,
		Detail:    "OTP printed in server log",
		DevCode:   code,
	}
}
