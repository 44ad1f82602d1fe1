package environments

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	SignalWire SignalWireConfig
	NATS       NATSConfig
	Auth       AuthConfig
	Session    SessionConfig
}

type ServerConfig struct {
	Port string
	// AllowedOrigins feeds both CORS and the live session origin check.
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	TelephoneTTL time.Duration
}

// SignalWireConfig holds the carrier credentials used for outbound SMS and number provisioning.
type SignalWireConfig struct {
	Space     string
	ProjectID string
	APIToken  string
	Context   string
	Timeout   time.Duration
}

type NATSConfig struct {
	Enabled    bool
	URL        string
	Subject    string
	QueueGroup string
}

type AuthConfig struct {
	AdminAPIKey   string
	InboundAPIKey string
	SessionSecret string
	SessionTTL    time.Duration
}

type SessionConfig struct {
	EventBuffer int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           GetEnv("SERVER_PORT", "9000"),
			AllowedOrigins: GetEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "relay"),
			Password: GetEnv("DB_PASSWORD", "relay123"),
			DBName:   GetEnv("DB_NAME", "sms_relay"),
		},
		Redis: RedisConfig{
			Host:         GetEnv("REDIS_HOST", "localhost"),
			Port:         GetEnv("REDIS_PORT", "6379"),
			Password:     GetEnv("REDIS_PASSWORD", ""),
			DB:           GetEnvAsInt("REDIS_DB", 0),
			TelephoneTTL: GetEnvAsDuration("REDIS_TELEPHONE_TTL", 24*time.Hour),
		},
		SignalWire: SignalWireConfig{
			Space:     GetEnv("SIGNALWIRE_SPACE", ""),
			ProjectID: GetEnv("SIGNALWIRE_PROJECT_ID", ""),
			APIToken:  GetEnv("SIGNALWIRE_API_TOKEN", ""),
			Context:   GetEnv("SIGNALWIRE_CONTEXT", "office"),
			Timeout:   time.Duration(GetEnvAsInt("SIGNALWIRE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		NATS: NATSConfig{
			Enabled:    GetEnvAsBool("NATS_ENABLED", false),
			URL:        GetEnv("NATS_URL", "nats://localhost:4222"),
			Subject:    GetEnv("NATS_INBOUND_SUBJECT", "sms.incoming.raw.*"),
			QueueGroup: GetEnv("NATS_QUEUE_GROUP", "sms-relay"),
		},
		Auth: AuthConfig{
			AdminAPIKey:   GetEnv("ADMIN_API_KEY", ""),
			InboundAPIKey: GetEnv("INBOUND_API_KEY", ""),
			SessionSecret: GetEnv("SESSION_SECRET", ""),
			SessionTTL:    GetEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Session: SessionConfig{
			EventBuffer: GetEnvAsInt("SESSION_EVENT_BUFFER", 32),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsList splits a comma separated value, dropping empty entries.
func GetEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
