package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is the placeholder secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "CHANGE_ME_PLEASE"

// DefaultAdminPassword seeds the first admin account when ADMIN_PASSWORD is unset.
const DefaultAdminPassword = "admin123"

type Config struct {
	AppEnv                  string
	LogLevel                slog.Level
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWT                     JWTConfig
	BcryptCost              int
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int
	TrustProxyHeaders       bool
	AdminUsername           string
	AdminEmail              string
	AdminPassword           string
}

// JWTConfig carries the token settings handed to the auth package.
type JWTConfig struct {
	Secret                string
	Issuer                string
	ExpirationMinutes     int
	RefreshExpirationDays int
}

func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshExpirationDays) * 24 * time.Hour
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:                  strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:                getLevel("LOG_LEVEL", slog.LevelInfo),
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 2)),
		JWT: JWTConfig{
			Secret:                getEnv("JWT_SECRET", DefaultJWTSecret),
			Issuer:                getEnv("JWT_ISSUER", "violation_system"),
			ExpirationMinutes:     getInt("JWT_EXPIRATION_MINUTES", 2880),
			RefreshExpirationDays: getInt("JWT_REFRESH_EXPIRATION_DAYS", 7),
		},
		BcryptCost:        getInt("BCRYPT_COST", 12),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:      getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:  getInt("AUTH_RATE_LIMIT_RPM", 10),
		TrustProxyHeaders: getBool("TRUST_PROXY_HEADERS", false),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@localhost"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == DefaultJWTSecret {
		slog.Warn("JWT_SECRET is not set; using the placeholder secret")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS/DB_MAX_CONNS are inconsistent")
	}

	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}

	if c.AppEnv == "production" && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	if c.JWT.ExpirationMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive")
	}

	if c.JWT.RefreshExpirationDays <= 0 {
		return fmt.Errorf("JWT_REFRESH_EXPIRATION_DAYS must be positive")
	}

	if c.AppEnv == "production" && c.AdminPassword == DefaultAdminPassword {
		return fmt.Errorf("ADMIN_PASSWORD must be set in production")
	}

	// bcrypt refuses to hash anything longer.
	if len(c.AdminPassword) > 72 {
		return fmt.Errorf("ADMIN_PASSWORD must be at most 72 bytes")
	}

	if c.BcryptCost < bcrypt.DefaultCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.DefaultCost, bcrypt.MaxCost)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}

	return level
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
