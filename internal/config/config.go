package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// BackendConfig points at the helpdesk REST backend.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// RedisConfig holds Redis connection values for the session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session and admin-sentinel parameters. Deployments
// should set AUTH_ADMIN_PASSWORD_HASH (bcrypt); when absent, the plaintext
// AUTH_ADMIN_PASSWORD (development default 123456) is hashed at startup so
// comparisons always go through bcrypt.
type AuthConfig struct {
	AdminEmail           string
	AdminPassword        string
	AdminPasswordHash    string
	AdminBearer          string
	SessionCookie        string
	SessionTTLMinutes    int
	RememberMeTTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "helpdesk-console"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "3000"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://127.0.0.1:5000/api"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminEmail:           getEnv("AUTH_ADMIN_EMAIL", "admin"),
			AdminPassword:        getEnv("AUTH_ADMIN_PASSWORD", "123456"),
			AdminPasswordHash:    os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
			AdminBearer:          getEnv("AUTH_ADMIN_BEARER", "admin_token"),
			SessionCookie:        getEnv("AUTH_SESSION_COOKIE", "helpdesk_session"),
			SessionTTLMinutes:    getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 60),
			RememberMeTTLMinutes: getEnvAsInt("AUTH_REMEMBER_ME_TTL_MINUTES", 10080),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Timeout returns the backend request timeout duration.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// SessionTTL returns the session lifetime for the given remember-me choice.
func (a AuthConfig) SessionTTL(rememberMe bool) time.Duration {
	minutes := a.SessionTTLMinutes
	if rememberMe && a.RememberMeTTLMinutes > minutes {
		minutes = a.RememberMeTTLMinutes
	}
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
