package config

import (
	"log"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refund and sweep policy
	RefundRetentionRate decimal.Decimal
	BookingExpiryGrace  time.Duration
	SweepInterval       time.Duration
	RefundAckTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "resort-backend")
	viper.SetDefault("REFUND_RETENTION_RATE", "0.5")
	viper.SetDefault("BOOKING_EXPIRY_GRACE", "72h")
	viper.SetDefault("SWEEP_INTERVAL", "1h")
	viper.SetDefault("REFUND_ACK_TIMEOUT", "168h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "resort-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	// Load the refund retention rate (fraction of the paid total returned on a refund)
	retentionStr := viper.GetString("REFUND_RETENTION_RATE")
	retention, err := decimal.NewFromString(retentionStr)
	if err != nil || retention.IsNegative() || retention.GreaterThan(decimal.NewFromInt(1)) {
		retention = domain.DefaultRefundRetention
		if retentionStr != "" {
			log.Printf("Warning: Invalid value for REFUND_RETENTION_RATE ('%s'). Defaulting to %s.\n", retentionStr, retention.String())
		}
	}
	cfg.RefundRetentionRate = retention

	cfg.BookingExpiryGrace = durationOrDefault("BOOKING_EXPIRY_GRACE", 72*time.Hour)
	cfg.SweepInterval = durationOrDefault("SWEEP_INTERVAL", time.Hour)
	cfg.RefundAckTimeout = durationOrDefault("REFUND_ACK_TIMEOUT", 168*time.Hour)

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
