package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret                string
	JWTIssuer                string
	JWTExpiryDuration        time.Duration
	ResetTokenExpiryDuration time.Duration

	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "teller-backend")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("RESET_TOKEN_EXPIRY_DURATION", "15m")
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	resetExpiryStr := viper.GetString("RESET_TOKEN_EXPIRY_DURATION")
	resetExpiry, err := time.ParseDuration(resetExpiryStr)
	if err != nil {
		resetExpiry = 15 * time.Minute
		log.Printf("Warning: Invalid value for RESET_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", resetExpiryStr, resetExpiry)
	}
	cfg.ResetTokenExpiryDuration = resetExpiry

	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}
