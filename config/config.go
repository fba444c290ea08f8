package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	Port        string
	MetricsAddr string
	LogFile     string

	DBDriver string

	JWTSecret    string
	JWTExpiresIn time.Duration

	UploadDir      string
	UploadMaxBytes int64

	PasswordMinLength  int
	PaginationMaxLimit int

	RateLimitRPS   float64
	RateLimitBurst int

	StoreFallbackOnError bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string
	CorsOrigins string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFromName string
}

const devJWTSecret = "hotel-nepal-dev-secret"

// Load reads the environment. Every value has a development default so the
// server starts with no configuration at all.
func Load() Config {
	c := Config{
		AppEnv:      envOrDefault("APP_ENV", "dev"),
		Port:        envOrDefault("PORT", "5000"),
		MetricsAddr: envOrDefault("METRICS_ADDR", ""),
		LogFile:     envOrDefault("LOG_FILE", ""),

		DBDriver: strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),

		JWTSecret:    envOrDefault("JWT_SECRET", devJWTSecret),
		JWTExpiresIn: durationOrDefault("JWT_EXPIRES_IN", 24*time.Hour),

		UploadDir:      envOrDefault("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(intOrDefault("UPLOAD_MAX_BYTES", 5<<20)),

		PasswordMinLength:  intOrDefault("PASSWORD_MIN_LENGTH", 6),
		PaginationMaxLimit: intOrDefault("PAGINATION_MAX_LIMIT", 100),

		RateLimitRPS:   floatOrDefault("RATE_LIMIT_RPS", 20),
		RateLimitBurst: intOrDefault("RATE_LIMIT_BURST", 40),

		StoreFallbackOnError: boolOrDefault("STORE_FALLBACK_ON_ERROR", true),

		RedisAddr:     envOrDefault("REDIS_ADDR", ""),
		RedisPassword: envOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       intOrDefault("REDIS_DB", 0),
		CacheTTL:      time.Duration(intOrDefault("CACHE_TTL_SECONDS", 60)) * time.Second,

		RabbitMQURL: envOrDefault("RABBITMQ_URL", ""),
		CorsOrigins: envOrDefault("CORS_ORIGINS", ""),

		SMTPHost:     envOrDefault("SMTP_HOST", ""),
		SMTPPort:     envOrDefault("SMTP_PORT", "587"),
		SMTPUsername: envOrDefault("SMTP_USERNAME", ""),
		SMTPPassword: envOrDefault("SMTP_PASSWORD", ""),
		SMTPFromName: envOrDefault("SMTP_FROM_NAME", "Hotel Nepal"),
	}
	if c.JWTSecret == devJWTSecret && !c.IsDev() {
		log.Warn().Msg("JWT_SECRET is not set; using the development secret")
	}
	return c
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func intOrDefault(key string, def int) int {
	if v := envOrDefault(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
	}
	return def
}

func floatOrDefault(key string, def float64) float64 {
	if v := envOrDefault(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid number, using default")
	}
	return def
}

func boolOrDefault(key string, def bool) bool {
	if v := envOrDefault(key, ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid boolean, using default")
	}
	return def
}

// durationOrDefault accepts Go durations ("90m", "24h") and whole days ("7d").
func durationOrDefault(key string, def time.Duration) time.Duration {
	v := envOrDefault(key, "")
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	log.Warn().Str("key", key).Str("value", v).Msg("invalid duration, using default")
	return def
}
