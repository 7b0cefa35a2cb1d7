package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string
	StaticDir     string
	DataDir       string

	// AdminSecret gates the /admin endpoints. When empty the admin
	// endpoints refuse every request.
	AdminSecret string

	CORSAllowedOrigins []string

	// Coarse limit applied to all traffic.
	GlobalRateWindow time.Duration
	GlobalRateLimit  int

	// Strict limit applied to contact-form submissions only.
	ContactRateWindow time.Duration
	ContactRateLimit  int

	// Redis, when configured, centralizes rate-limiter state across
	// instances. Without it each instance counts on its own.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Email transport selection: "smtp" (default) or "sendgrid".
	EmailProvider string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SendGridAPIKey string

	NotifyFromEmail string
	NotifyFromName  string
	NotifyToEmail   string

	// BusinessWhatsApp is the business number (country code, no plus)
	// used for the confirmation deep link.
	BusinessWhatsApp string

	// Timezone for dashboard aggregates and notification timestamps.
	Timezone string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		StaticDir:     getEnv("STATIC_DIR", ""),
		DataDir:       getEnv("DATA_DIR", "data"),

		AdminSecret: getEnv("ADMIN_SECRET", ""),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),

		GlobalRateWindow: getEnvAsDuration("GLOBAL_RATE_WINDOW", 15*time.Minute),
		GlobalRateLimit:  getEnvAsInt("GLOBAL_RATE_LIMIT", 100),

		ContactRateWindow: getEnvAsDuration("CONTACT_RATE_WINDOW", time.Hour),
		ContactRateLimit:  getEnvAsInt("CONTACT_RATE_LIMIT", 5),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "smtp"))),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		NotifyFromEmail: getEnv("NOTIFY_FROM_EMAIL", ""),
		NotifyFromName:  getEnv("NOTIFY_FROM_NAME", "Secure I.T. Services"),
		NotifyToEmail:   getEnv("NOTIFY_TO_EMAIL", ""),

		BusinessWhatsApp: getEnv("BUSINESS_WHATSAPP", "919022283313"),

		Timezone: getEnv("TIMEZONE", "Asia/Kolkata"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
