package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	MetricsAddr  string
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers []string
	EventsTopic  string
	OTLPEndpoint string

	JWTSecret           string
	SessionTTL          time.Duration
	MagicLinkTTL        time.Duration
	MagicLinkBaseURL    string
	MagicLinkRateLimit  int64
	MagicLinkRateWindow time.Duration

	MailAPIURL string
	MailAPIKey string
	MailFrom   string

	S3Region    string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	SyncWebhookURL string

	// EmployerRoleID is assigned to every user that completes onboarding.
	EmployerRoleID string
	WelcomeCredits int64
	MediaMaxBytes  int64
	GalleryLimit   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		MetricsAddr:  getEnv("METRICS_ADDR", ":9090"),
		PostgresDSN:  getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=dashboard sslmode=disable"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKER", "localhost:9092"), ","),
		EventsTopic:  getEnv("EVENTS_TOPIC", "employer-events"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),

		JWTSecret:           getEnv("JWT_SECRET", "supersecret"),
		SessionTTL:          getDuration("SESSION_TTL", 7*24*time.Hour),
		MagicLinkTTL:        getDuration("MAGIC_LINK_TTL", 15*time.Minute),
		MagicLinkBaseURL:    getEnv("MAGIC_LINK_BASE_URL", "http://localhost:3000/auth/callback"),
		MagicLinkRateLimit:  getInt("MAGIC_LINK_RATE_LIMIT", 5),
		MagicLinkRateWindow: getDuration("MAGIC_LINK_RATE_WINDOW", 15*time.Minute),

		MailAPIURL: getEnv("MAIL_API_URL", "http://localhost:8025/api/send"),
		MailAPIKey: os.Getenv("MAIL_API_KEY"),
		MailFrom:   getEnv("MAIL_FROM", "noreply@example.com"),

		S3Region:    getEnv("S3_REGION", "eu-west-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Bucket:    getEnv("S3_BUCKET", "employer-media"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		SyncWebhookURL: os.Getenv("SYNC_WEBHOOK_URL"),

		EmployerRoleID: getEnv("EMPLOYER_ROLE_ID", "employer"),
		WelcomeCredits: getInt("WELCOME_CREDITS", 0),
		MediaMaxBytes:  getInt("MEDIA_MAX_BYTES", 5<<20),
		GalleryLimit:   int(getInt("GALLERY_LIMIT", 10)),
	}

	slog.Info("config loaded",
		"http_addr", cfg.HTTPAddr,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"s3_bucket", cfg.S3Bucket,
		"sync_webhook", cfg.SyncWebhookURL != "")
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		slog.Warn("invalid integer in env, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in env, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}
