package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Messaging MessagingConfig
	Billing   BillingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
	Seed         bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	OwnerExpiry      time.Duration
	SuperadminExpiry time.Duration
}

// SecurityConfig holds secrets and fixed credentials
type SecurityConfig struct {
	SessionEncryptionKey   string
	SuperadminUsername     string
	SuperadminPasswordHash string
	WebhookAPIKey          string
	CronSecret             string
	LoginRatePerMinute     int
	LoginBurst             int
}

// MessagingConfig holds the platform's own WhatsApp gateway settings.
// Per tenant gateway credentials live in the settings table.
type MessagingConfig struct {
	GatewayURL       string
	GatewayAPIKey    string
	GatewayInstance  string
	OperatorWhatsApp string
	NotifyTimeout    time.Duration
	QueueSize        int
}

// BillingConfig holds subscription lifecycle settings
type BillingConfig struct {
	Timezone      string
	TrialDays     int
	CheckInterval time.Duration
	DefaultMonths int
}

// Location resolves Timezone, falling back to UTC when it is unknown
func (c BillingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "maisquecardapio"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "maisquecardapio.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
			Seed:         getEnvAsBool("DB_SEED", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "change-this-in-production"),
			OwnerExpiry:      getEnvAsDuration("JWT_OWNER_EXPIRY", 12*time.Hour),
			SuperadminExpiry: getEnvAsDuration("SUPERADMIN_TOKEN_EXPIRY", 12*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey:   getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			SuperadminUsername:     getEnv("SUPERADMIN_USERNAME", "admin"),
			SuperadminPasswordHash: getEnv("SUPERADMIN_PASSWORD_HASH", ""),
			WebhookAPIKey:          getEnv("WEBHOOK_API_KEY", ""),
			CronSecret:             getEnv("CRON_SECRET", ""),
			LoginRatePerMinute:     getEnvAsInt("LOGIN_RATE_PER_MINUTE", 5),
			LoginBurst:             getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		Messaging: MessagingConfig{
			GatewayURL:       strings.TrimRight(getEnv("EVOLUTION_API_URL", ""), "/"),
			GatewayAPIKey:    getEnv("EVOLUTION_API_KEY", ""),
			GatewayInstance:  getEnv("EVOLUTION_INSTANCE", ""),
			OperatorWhatsApp: getEnv("OPERATOR_WHATSAPP", ""),
			NotifyTimeout:    getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
			QueueSize:        getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		},
		Billing: BillingConfig{
			Timezone:      getEnv("BILLING_TIMEZONE", "America/Sao_Paulo"),
			TrialDays:     getEnvAsInt("TRIAL_DAYS", 7),
			CheckInterval: getEnvAsDuration("SUBSCRIPTION_CHECK_INTERVAL", 0),
			DefaultMonths: getEnvAsInt("PREMIUM_MONTHS_DEFAULT", 1),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
