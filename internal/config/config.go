package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS (optional); a CA file additionally requires client certificates
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string

	// Dictionary
	DictionaryFile string // JSON file replacing the embedded dictionary, empty for the embedded one

	// Responses
	ResponseBudget int // Max characters of a decode/encode response body
	MaxTextLength  int // Max characters accepted in a scan request

	// Database (optional, enables persisted lookup analytics)
	DatabaseURL      string
	DBMaxConns       int
	DBConnectTimeout time.Duration

	// Redis (optional, shares rate limit counters between replicas)
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" for any

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// URL health checks
	LinkCheckEnabled  bool
	LinkCheckInterval time.Duration
	LinkCheckDelay    time.Duration

	// Email (optional, notifies maintainers about broken entry urls)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls" or "starttls"
	NotifyEmails string // Comma-separated recipients

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "FedSpeak"
	SiteTagline string // env: SITE_TAGLINE, default: "Decode federal government acronyms"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		ServerAddr:        getEnv("SERVER_ADDR", ":3000"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:        getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:       getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:        getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:         getEnv("TLS_CA_FILE", ""),
		DictionaryFile:    getEnv("DICTIONARY_FILE", ""),
		ResponseBudget:    getEnvInt("RESPONSE_BUDGET", 2000),
		MaxTextLength:     getEnvInt("MAX_TEXT_LENGTH", 10000),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 4),
		DBConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		RedisURL:          getEnv("REDIS_URL", ""),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		LinkCheckEnabled:  getEnv("LINK_CHECK_ENABLED", "") != "",
		LinkCheckInterval: getEnvDuration("LINK_CHECK_INTERVAL", 24*time.Hour),
		LinkCheckDelay:    getEnvDuration("LINK_CHECK_DELAY", time.Second),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "FedSpeak"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),
		NotifyEmails: getEnv("NOTIFY_EMAILS", ""),

		SiteTitle:   getEnv("SITE_TITLE", "FedSpeak"),
		SiteTagline: getEnv("SITE_TAGLINE", "Decode federal government acronyms"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AllowedOrigins splits CORSOrigins into a list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// IsMTLSEnabled returns true if client certificates are required.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// NotifyRecipients splits NotifyEmails into a list.
func (c *Config) NotifyRecipients() []string {
	var out []string
	for _, addr := range strings.Split(c.NotifyEmails, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// HasDatabase returns true if lookup analytics should be persisted.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
