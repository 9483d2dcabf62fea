package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RabbitURL string
	RedisURL  string

	RateLimitPerMinute int

	AdminPasswordHash  string
	AdminSessionSecret string
	AdminSessionTTL    time.Duration
	CookieSecure       bool

	MailerSendAPIKey string
	MailFromEmail    string
	MailFromName     string

	BankAccountIBAN string
	StaticDir       string
	SeedSpots       bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, using environment")
	}

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "rezervace"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		RabbitURL:          os.Getenv("RABBITMQ_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 10),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminSessionSecret: strings.TrimSpace(os.Getenv("ADMIN_SESSION_SECRET")),
		AdminSessionTTL:    getDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		CookieSecure:       getBool("COOKIE_SECURE", false),
		MailerSendAPIKey:   os.Getenv("MAILERSEND_API_KEY"),
		MailFromEmail:      getEnv("MAIL_FROM_EMAIL", "rezervace@example.com"),
		MailFromName:       getEnv("MAIL_FROM_NAME", "Rybník rezervace"),
		BankAccountIBAN:    os.Getenv("BANK_ACCOUNT_IBAN"),
		StaticDir:          getEnv("STATIC_DIR", "./public"),
		SeedSpots:          getBool("SEED_SPOTS", true),
	}

	if err := validatePort(cfg.ServerPort); err != nil {
		log.Fatalf("[Config] %v", err)
	}
	if err := validateAdmin(cfg); err != nil {
		log.Fatalf("[Config] %v", err)
	}
	if cfg.AdminPasswordHash == "" {
		log.Println("[Config] ADMIN_PASSWORD_HASH not set, admin API disabled")
	}
	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// MinSessionSecretLen is the shortest ADMIN_SESSION_SECRET accepted when
// admin login is enabled.
const MinSessionSecretLen = 32

func validateAdmin(c *Config) error {
	if c.AdminPasswordHash == "" {
		return nil
	}
	if len(c.AdminSessionSecret) < MinSessionSecretLen {
		return fmt.Errorf("ADMIN_SESSION_SECRET must be at least %d characters when ADMIN_PASSWORD_HASH is set", MinSessionSecretLen)
	}
	return nil
}

func validatePort(v string) error {
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid TCP port (got %q)", v)
	}
	return nil
}
