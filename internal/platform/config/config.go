package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	MongoURI     string
	MongoDB      string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Carrier API access.
	CarrierBaseURL   string
	CarrierDetailURL string
	CarrierAuthToken string
	CarrierScanDelay time.Duration

	// Cash closure schedule. Times are "HH:MM" in Timezone.
	CashClosureOpenTime  string
	CashClosureCloseTime string
	Timezone             string

	// SMTP settings for closure summary mail. Mail is disabled when Host is
	// empty.
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPFrom      string
	SummaryMailTo string
}

// LoadConfig loads configuration from environment variables and the .env file
// if present. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "workexpress")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "workexpress")
	viper.SetDefault("CARRIER_BASE_URL", "")
	viper.SetDefault("CARRIER_DETAIL_URL", "")
	viper.SetDefault("CARRIER_AUTH_TOKEN", "")
	viper.SetDefault("CARRIER_SCAN_DELAY", "1s")
	viper.SetDefault("CASH_CLOSURE_OPEN_TIME", "09:00")
	viper.SetDefault("CASH_CLOSURE_CLOSE_TIME", "18:00")
	viper.SetDefault("CASH_CLOSURE_TIMEZONE", "America/Panama")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("SUMMARY_MAIL_TO", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		MongoURI:             viper.GetString("MONGO_URI"),
		MongoDB:              viper.GetString("MONGO_DB"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTIssuer:            viper.GetString("JWT_ISSUER"),
		CarrierBaseURL:       viper.GetString("CARRIER_BASE_URL"),
		CarrierDetailURL:     viper.GetString("CARRIER_DETAIL_URL"),
		CarrierAuthToken:     viper.GetString("CARRIER_AUTH_TOKEN"),
		CashClosureOpenTime:  viper.GetString("CASH_CLOSURE_OPEN_TIME"),
		CashClosureCloseTime: viper.GetString("CASH_CLOSURE_CLOSE_TIME"),
		Timezone:             viper.GetString("CASH_CLOSURE_TIMEZONE"),
		SMTPHost:             viper.GetString("SMTP_HOST"),
		SMTPPort:             viper.GetInt("SMTP_PORT"),
		SMTPUser:             viper.GetString("SMTP_USER"),
		SMTPPassword:         viper.GetString("SMTP_PASSWORD"),
		SMTPFrom:             viper.GetString("SMTP_FROM"),
		SummaryMailTo:        viper.GetString("SUMMARY_MAIL_TO"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.CarrierBaseURL == "" {
		log.Println("Warning: CARRIER_BASE_URL not set. External tracking will not function.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	scanDelayStr := viper.GetString("CARRIER_SCAN_DELAY")
	scanDelay, err := time.ParseDuration(scanDelayStr)
	if err != nil {
		scanDelay = time.Second
		log.Printf("Warning: Invalid value for CARRIER_SCAN_DELAY (%q). Defaulting to %s.\n", scanDelayStr, scanDelay)
	}
	cfg.CarrierScanDelay = scanDelay

	if _, _, err := ParseClock(cfg.CashClosureOpenTime); err != nil {
		return nil, fmt.Errorf("invalid CASH_CLOSURE_OPEN_TIME: %w", err)
	}
	if _, _, err := ParseClock(cfg.CashClosureCloseTime); err != nil {
		return nil, fmt.Errorf("invalid CASH_CLOSURE_CLOSE_TIME: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid CASH_CLOSURE_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}

// MailEnabled reports whether closure summary mail should be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SummaryMailTo != ""
}
