package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	SMS      SMSConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type OTPConfig struct {
	TTLMinutes  int
	CountryCode string
}

// TTL returns the OTP validity window.
func (c OTPConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// SMSConfig selects the delivery channel. Provider is "mock" or "twilio".
type SMSConfig struct {
	Provider         string
	TimeoutSeconds   int
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioBaseURL    string
}

func (c SMSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads an optional env file and then the process environment.
// Environment variables win over values from the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "NutriVerse")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "nutriverse")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24*7)
	v.SetDefault("OTP_TTL_MINUTES", 5)
	v.SetDefault("COUNTRY_CODE", "91")
	v.SetDefault("SMS_PROVIDER", "mock")
	v.SetDefault("SMS_TIMEOUT_SECONDS", 10)
	v.SetDefault("TWILIO_BASE_URL", "https://api.twilio.com")

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("SERVER_PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			TTLMinutes:  v.GetInt("OTP_TTL_MINUTES"),
			CountryCode: v.GetString("COUNTRY_CODE"),
		},
		SMS: SMSConfig{
			Provider:         strings.ToLower(v.GetString("SMS_PROVIDER")),
			TimeoutSeconds:   v.GetInt("SMS_TIMEOUT_SECONDS"),
			TwilioAccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: v.GetString("TWILIO_FROM_NUMBER"),
			TwilioBaseURL:    strings.TrimRight(v.GetString("TWILIO_BASE_URL"), "/"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", c.JWT.ExpiryHours)
	}
	if c.OTP.TTLMinutes <= 0 {
		return fmt.Errorf("OTP_TTL_MINUTES must be positive, got %d", c.OTP.TTLMinutes)
	}
	if c.OTP.CountryCode == "" || !IsDigits(c.OTP.CountryCode) {
		return fmt.Errorf("COUNTRY_CODE must be numeric, got %q", c.OTP.CountryCode)
	}
	if c.SMS.TimeoutSeconds <= 0 {
		return fmt.Errorf("SMS_TIMEOUT_SECONDS must be positive, got %d", c.SMS.TimeoutSeconds)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
