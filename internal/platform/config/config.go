package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	RateLimit      string
	AllowedOrigins []string
	RedisURL       string
	MigrationsPath string
	LockTTL        time.Duration

	// Ledger parameters
	OverdueDailyRate        decimal.Decimal
	VariableFileChargeRate  decimal.Decimal
	FixedMicroPrincipal     decimal.Decimal
	FixedMicroInstallment   decimal.Decimal
	FixedMicroInterval      string
	FixedMicroProcessingFee decimal.Decimal
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
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("LOCK_TTL", "30s")
	viper.SetDefault("OVERDUE_DAILY_RATE", "0.03")
	viper.SetDefault("VARIABLE_FILE_CHARGE_RATE", "0.05")
	viper.SetDefault("FIXED_MICRO_PRINCIPAL", "10000")
	viper.SetDefault("FIXED_MICRO_INSTALLMENT", "100")
	viper.SetDefault("FIXED_MICRO_INTERVAL", "daily")
	viper.SetDefault("FIXED_MICRO_PROCESSING_FEE", "2000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL)
	}
	cfg.LockTTL = lockTTL

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.FixedMicroInterval = strings.ToLower(strings.TrimSpace(viper.GetString("FIXED_MICRO_INTERVAL")))

	decimals := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"OVERDUE_DAILY_RATE", &cfg.OverdueDailyRate},
		{"VARIABLE_FILE_CHARGE_RATE", &cfg.VariableFileChargeRate},
		{"FIXED_MICRO_PRINCIPAL", &cfg.FixedMicroPrincipal},
		{"FIXED_MICRO_INSTALLMENT", &cfg.FixedMicroInstallment},
		{"FIXED_MICRO_PROCESSING_FEE", &cfg.FixedMicroProcessingFee},
	}
	for _, d := range decimals {
		v, err := decimal.NewFromString(strings.TrimSpace(viper.GetString(d.key)))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if v.IsNegative() {
			return nil, fmt.Errorf("invalid %s: must not be negative", d.key)
		}
		*d.dst = v
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
