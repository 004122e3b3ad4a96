package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	MobileKey contextKey = "mobile"
)

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func GetMobileFromContext(ctx context.Context) (string, bool) {
	mobile, ok := ctx.Value(MobileKey).(string)
	return mobile, ok
}

// SetUserContext stores the authenticated identity decoded from a session token
func SetUserContext(ctx context.Context, userID int64, mobile string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, MobileKey, mobile)
	return ctx
}
