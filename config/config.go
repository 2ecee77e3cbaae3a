// Package config provides configuration management for the signalforge application.
// All settings come from environment variables; validation problems are collected
// and reported together so a misconfigured deployment fails with one readable error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig holds connection settings for the Postgres pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	JWTSecret            string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// OAuthConfig holds settings for the external OAuth provider hand-off.
// AuthorizeURL is the provider's authorization endpoint; the callback route
// on this service consumes the one-time code the provider bridge deposits.
type OAuthConfig struct {
	Provider     string
	ClientID     string
	AuthorizeURL string
	CodeTTL      time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the root configuration object assembled by LoadConfig.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	OAuth  *OAuthConfig
	Server *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool within sane bounds. An out-of-range value is
// clamped and reported as a startup error alongside any others.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 2 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 2, clamping to 2", varName, size))
		return 2
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig reads every setting from the environment. It returns a single
// error listing all problems found, or a fully populated AppConfig.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	db := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	auth := &AuthConfig{
		JWTSecret:            getRequiredEnv("JWT_SECRET", &errs),
		AccessTokenDuration:  getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute, &errs),
		RefreshTokenDuration: getOptionalEnvDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour, &errs),
	}

	oauth := &OAuthConfig{
		Provider:     getOptionalEnv("OAUTH_PROVIDER", "google"),
		ClientID:     getOptionalEnv("OAUTH_CLIENT_ID", ""),
		AuthorizeURL: getOptionalEnv("OAUTH_AUTHORIZE_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
		CodeTTL:      getOptionalEnvDuration("OAUTH_CODE_TTL", 5*time.Minute, &errs),
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return &AppConfig{
		DB:     db,
		Auth:   auth,
		OAuth:  oauth,
		Server: server,
	}, nil
}

// DSN renders the pool configuration as a pgx connection string.
func (c *PoolConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName,
	)
}
