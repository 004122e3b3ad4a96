package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(120) NOT NULL,
		mobile     VARCHAR(16)  NOT NULL UNIQUE,
		address    VARCHAR(255) NOT NULL,
		pincode    CHAR(6)      NOT NULL,
		created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS otp_codes (
		id           BIGSERIAL PRIMARY KEY,
		mobile       VARCHAR(16) NOT NULL,
		otp          CHAR(6)     NOT NULL,
		purpose      VARCHAR(10) NOT NULL CHECK (purpose IN ('signup', 'login')),
		payload_json JSONB       NULL,
		is_used      BOOLEAN     NOT NULL DEFAULT FALSE,
		expires_at   TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_otp_codes_mobile_purpose ON otp_codes (mobile, purpose)`,
	`CREATE INDEX IF NOT EXISTS idx_otp_codes_expires_at ON otp_codes (expires_at)`,
}

// Migrate creates the users and otp_codes tables when they are missing.
func Migrate(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
