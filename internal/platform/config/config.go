package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	CORSOrigins   []string

	// Terminal bridge
	BridgeURL     string
	BridgeTimeout time.Duration

	// Background jobs
	RefreshCronSpec  string
	HistoryRetention int // days of balance history to keep

	// Rate limiting, in ulule/limiter notation ("300-M" = 300 per minute)
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:4200")
	viper.SetDefault("BRIDGE_URL", "http://localhost:5000")
	viper.SetDefault("BRIDGE_TIMEOUT", "10s")
	viper.SetDefault("REFRESH_CRON", "@every 15m")
	viper.SetDefault("HISTORY_RETENTION_DAYS", 365)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSOrigins = viper.GetStringSlice("CORS_ORIGINS")

	cfg.BridgeURL = viper.GetString("BRIDGE_URL")
	if cfg.BridgeURL == "" {
		log.Println("Warning: BRIDGE_URL not set. Account refresh and balance sync will be unavailable.")
	}

	bridgeTimeoutStr := viper.GetString("BRIDGE_TIMEOUT")
	bridgeTimeout, err := time.ParseDuration(bridgeTimeoutStr)
	if err != nil {
		bridgeTimeout = 10 * time.Second
		if bridgeTimeoutStr != "" {
			log.Printf("Warning: Invalid value for BRIDGE_TIMEOUT ('%s'). Defaulting to %s.\n", bridgeTimeoutStr, bridgeTimeout)
		}
	}
	cfg.BridgeTimeout = bridgeTimeout

	cfg.RefreshCronSpec = viper.GetString("REFRESH_CRON")
	cfg.HistoryRetention = viper.GetInt("HISTORY_RETENTION_DAYS")
	if cfg.HistoryRetention <= 0 {
		cfg.HistoryRetention = 365
		log.Printf("Warning: HISTORY_RETENTION_DAYS must be positive. Defaulting to %d.\n", cfg.HistoryRetention)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
