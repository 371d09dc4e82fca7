package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	Migrate      bool
	LogLevel     string
	LogFormat    string

	// Gateway-only settings.
	GatewayAddr   string
	ServerURL     string
	RatePerMinute int
	RateBurst     int
}

// Load loads server configuration from .env (optional) and environment
// variables. DB_DSN is required.
func Load() (*Config, error) {
	cfg, err := loadCommon()
	if err != nil {
		return nil, err
	}

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.Migrate, err = getEnvAsBool("MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE: %w", err)
	}

	return cfg, nil
}

// LoadGateway loads gateway configuration. SHAREIT_SERVER_URL is required.
func LoadGateway() (*Config, error) {
	cfg, err := loadCommon()
	if err != nil {
		return nil, err
	}

	cfg.ServerURL = os.Getenv("SHAREIT_SERVER_URL")
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SHAREIT_SERVER_URL is required")
	}

	cfg.GatewayAddr = getEnv("GATEWAY_ADDR", ":8080")

	cfg.RatePerMinute, err = getEnvAsInt("RATE_PER_MINUTE", 120)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_PER_MINUTE: %w", err)
	}
	cfg.RateBurst, err = getEnvAsInt("RATE_BURST", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_BURST: %w", err)
	}

	return cfg, nil
}

func loadCommon() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":9090")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsBool retrieves an environment variable as a boolean.
func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}
