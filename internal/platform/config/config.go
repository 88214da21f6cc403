package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Document store
	StoreBackend      string // "jsonbin" or "memory"
	JSONBinBaseURL    string
	JSONBinAPIKey     string
	AccountsBinID     string
	TransactionsBinID string
	InvestmentsBinID  string

	LockTimeout   time.Duration
	SweepSchedule string // cron spec; empty disables scheduled sweeps

	RateLimit        string // ulule/limiter format, e.g. "120-M"
	CORSAllowOrigins []string

	// SMTP notifications; notifications are disabled when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	ECBRatesURL string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "deluxwallet")
	viper.SetDefault("STORE_BACKEND", "jsonbin")
	viper.SetDefault("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3")
	viper.SetDefault("JSONBIN_API_KEY", "")
	viper.SetDefault("ACCOUNTS_BIN_ID", "")
	viper.SetDefault("TRANSACTIONS_BIN_ID", "")
	viper.SetDefault("INVESTMENTS_BIN_ID", "")
	viper.SetDefault("LOCK_TIMEOUT", "5s")
	viper.SetDefault("SWEEP_SCHEDULE", "")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOW_ORIGIN", "http://localhost:3000")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SENDER_EMAIL", "noreply@deluxwallet.example")
	viper.SetDefault("ECB_RATES_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		JWTIssuer:         viper.GetString("JWT_ISSUER"),
		StoreBackend:      viper.GetString("STORE_BACKEND"),
		JSONBinBaseURL:    viper.GetString("JSONBIN_BASE_URL"),
		JSONBinAPIKey:     viper.GetString("JSONBIN_API_KEY"),
		AccountsBinID:     viper.GetString("ACCOUNTS_BIN_ID"),
		TransactionsBinID: viper.GetString("TRANSACTIONS_BIN_ID"),
		InvestmentsBinID:  viper.GetString("INVESTMENTS_BIN_ID"),
		SweepSchedule:     viper.GetString("SWEEP_SCHEDULE"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
		CORSAllowOrigins:  []string{viper.GetString("CORS_ALLOW_ORIGIN")},
		SMTPHost:          viper.GetString("SMTP_HOST"),
		SMTPPort:          viper.GetString("SMTP_PORT"),
		SMTPUsername:      viper.GetString("SMTP_USERNAME"),
		SMTPPassword:      viper.GetString("SMTP_PASSWORD"),
		SenderEmail:       viper.GetString("SENDER_EMAIL"),
		ECBRatesURL:       viper.GetString("ECB_RATES_URL"),
		PosthogAPIKey:     viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRY_DURATION %q, defaulting to 24h\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = 24 * time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	lockTimeout, err := time.ParseDuration(viper.GetString("LOCK_TIMEOUT"))
	if err != nil {
		log.Printf("Warning: invalid LOCK_TIMEOUT %q, defaulting to 5s\n", viper.GetString("LOCK_TIMEOUT"))
		lockTimeout = 5 * time.Second
	}
	cfg.LockTimeout = lockTimeout

	if cfg.StoreBackend == "jsonbin" && cfg.JSONBinAPIKey == "" {
		log.Println("Warning: JSONBIN_API_KEY environment variable not set.")
	}

	return cfg, nil
}
