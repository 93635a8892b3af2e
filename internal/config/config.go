package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Placeholder secrets used when the environment leaves them unset.
const (
	DefaultSessionSecret = "default-secret-key-change-me"
	DefaultJWTSecret     = "default-jwt-secret-change-me"
)

type Config struct {
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPath              string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	SessionSecret       string
	JWTSecret           string
	JWTTTL              time.Duration
	GinMode             string
	LogMode             string
	Port                string
	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIBaseURL       string
	AITimeout           time.Duration
	SummarizeRateLimit  int
	SummarizeRateWindow time.Duration
	CORSOrigins         []string
	ShutdownTimeout     time.Duration
}

func Load() *Config {
	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "taskuser"),
		DBPassword:          getEnv("DB_PASSWORD", "taskpassword"),
		DBName:              getEnv("DB_NAME", "task_notes"),
		DBPath:              getEnv("DB_PATH", "task_notes.db"),
		RedisHost:           getEnv("REDIS_HOST", ""),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		SessionSecret:       getEnv("SESSION_SECRET", DefaultSessionSecret),
		JWTSecret:           getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:              getEnvDuration("JWT_TTL", 24*time.Hour),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogMode:             getEnv("LOG_MODE", "development"),
		Port:                getEnv("PORT", "8080"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		AITimeout:           getEnvDuration("AI_TIMEOUT", 60*time.Second),
		SummarizeRateLimit:  getEnvInt("SUMMARIZE_RATE_LIMIT", 10),
		SummarizeRateWindow: getEnvDuration("SUMMARIZE_RATE_WINDOW", time.Minute),
		CORSOrigins:         getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// DefaultSecrets lists the env vars still holding their placeholder value.
func (c *Config) DefaultSecrets() []string {
	var keys []string
	if c.SessionSecret == DefaultSessionSecret {
		keys = append(keys, "SESSION_SECRET")
	}
	if c.JWTSecret == DefaultJWTSecret {
		keys = append(keys, "JWT_SECRET")
	}
	return keys
}

// Validate refuses placeholder secrets in release mode.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if keys := c.DefaultSecrets(); len(keys) > 0 {
		return fmt.Errorf("%s must be set when GIN_MODE=release", strings.Join(keys, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
