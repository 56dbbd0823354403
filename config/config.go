package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	SecretKey         string
	SessionTTL        time.Duration
	SessionStore      string
	CookieSecure      bool
	DBHost            string
	DBPort            string
	DBUser            string
	DBPass            string
	DBName            string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	Storage           StorageConfig
	OCRPollInterval   time.Duration
	OCRMaxAttempts    int
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float32
	CORSAllowOrigins  []string
	MaxUploadBytes    int64
}

// ErrMissingSecret is returned by Validate when no session secret is configured.
var ErrMissingSecret = errors.New("SECRET_KEY is not set")

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Load reads the optional .env file and builds the configuration from the environment.
func Load() *Config {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	return &Config{
		Addr:              getEnv("APP_ADDR", ":8000"),
		SecretKey:         os.Getenv("SECRET_KEY"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionStore:      strings.ToLower(getEnv("SESSION_STORE", "redis")),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "root"),
		DBPass:            getEnv("DB_PASS", "root"),
		DBName:            getEnv("DB_NAME", "Go_Scan"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		Storage:           loadStorageConfig(),
		OCRPollInterval:   getEnvDuration("OCR_POLL_INTERVAL", 5*time.Second),
		OCRMaxAttempts:    getEnvInt("OCR_MAX_ATTEMPTS", 120),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAITemperature: float32(getEnvFloat("OPENAI_TEMPERATURE", 0.9)),
		CORSAllowOrigins:  getEnvList("CORS_ALLOW_ORIGINS", nil),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", 20<<20),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return ErrMissingSecret
	}
	if c.OCRPollInterval <= 0 {
		return fmt.Errorf("OCR_POLL_INTERVAL must be positive, got %s", c.OCRPollInterval)
	}
	if c.OCRMaxAttempts <= 0 {
		return fmt.Errorf("OCR_MAX_ATTEMPTS must be positive, got %d", c.OCRMaxAttempts)
	}
	switch c.SessionStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	return c.Storage.validate()
}

// RedisAddr returns host:port of the session Redis.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// MysqlDSN builds the DSN used by the gorm MySQL dialector.
func (c *Config) MysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
