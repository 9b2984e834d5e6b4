package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// CORS: comma separated list, "*" allows any origin
	AllowedOrigins []string
	// SMTP Configuration (primary transport)
	SMTPHost       string
	SMTPPort       int
	SMTPEncryption string // smtps | starttls | none, empty = derive from port
	// SMTP fallback transport, tried once when the primary fails
	SMTPFallbackHost       string
	SMTPFallbackPort       int
	SMTPFallbackEncryption string
	SMTPUsername           string
	SMTPPassword           string
	SMTPTimeoutSeconds     int
	SMTPFromEmail          string
	SMTPFromName           string
	ContactEmailTo         string
	ContactNameTo          string
	ExposeMailErrors       bool // Adds the first transport error to 500 responses as "debug"
	// Branding for outgoing mail
	BrandName           string
	BrandLogoURL        string
	BrandPrimaryColor   string
	BrandSecondaryColor string
	BrandBackground     string
	// Uploads
	MaxUploadMB   int
	ClamAVAddress string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Page behavior profiles
	PagesConfigPath string
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; production injects real env vars
	_ = godotenv.Load()

	smtpHost := getEnv("SMTP_HOST", "smtp.hostinger.com")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    environment(),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		// SMTP Configuration
		SMTPHost:               smtpHost,
		SMTPPort:               getEnvInt("SMTP_PORT", 465),
		SMTPEncryption:         getEnv("SMTP_ENCRYPTION", ""),
		SMTPFallbackHost:       getEnv("SMTP_FALLBACK_HOST", smtpHost),
		SMTPFallbackPort:       getEnvInt("SMTP_FALLBACK_PORT", 587),
		SMTPFallbackEncryption: getEnv("SMTP_FALLBACK_ENCRYPTION", ""),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		SMTPTimeoutSeconds:     getEnvInt("SMTP_TIMEOUT_SECONDS", 15),
		SMTPFromEmail:          getEnv("SMTP_FROM_EMAIL", "info@easeinstudio.com"),
		SMTPFromName:           getEnv("SMTP_FROM_NAME", "Easein Studio"),
		ContactEmailTo:         getEnv("CONTACT_EMAIL_TO", "easeinstudiohr@gmail.com"),
		ContactNameTo:          getEnv("CONTACT_NAME_TO", "Easein Studio Team"),
		ExposeMailErrors:       getEnvBool("EXPOSE_MAIL_ERRORS", false),
		// Branding (matches the site's :root palette)
		BrandName:           getEnv("BRAND_NAME", "Easein Studio"),
		BrandLogoURL:        getEnv("BRAND_LOGO_URL", "https://easeinstudio.com/logo.png"),
		BrandPrimaryColor:   getEnv("BRAND_PRIMARY_COLOR", "#00eaff"),
		BrandSecondaryColor: getEnv("BRAND_SECONDARY_COLOR", "#00b4d8"),
		BrandBackground:     getEnv("BRAND_BACKGROUND", "#02060a"),
		// Uploads
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),
		ClamAVAddress: getEnv("CLAMAV_ADDRESS", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Page behavior profiles
		PagesConfigPath: getEnv("PAGES_CONFIG_PATH", "config/pages.yaml"),
	}

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("WARNING: SMTP_USERNAME/SMTP_PASSWORD missing. Contact submissions will fail to send.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// MaxUploadBytes is the per-file limit for reference uploads.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
