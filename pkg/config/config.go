package config

import (
	"encoding/base64"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Crypto    CryptoConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// URL renders the connection settings as a postgres URL, the form the
// migration driver expects.
func (c DatabaseConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// JWTConfig holds the secret the auth backend signs access tokens with.
type JWTConfig struct {
	SecretKey string
	Issuer    string
}

type CryptoConfig struct {
	// FieldKey is the 32-byte key used to seal sensitive text columns.
	// Empty disables encryption and stores text in the clear.
	FieldKey []byte
}

type CacheConfig struct {
	TTL      time.Duration
	Capacity int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	IdleExpiry        time.Duration
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work as well (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	cacheTTL, _ := strconv.Atoi(getEnv("BALANCE_CACHE_TTL_SECONDS", "120"))
	cacheCapacity, _ := strconv.Atoi(getEnv("BALANCE_CACHE_CAPACITY", "1000"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))
	idle, _ := strconv.Atoi(getEnv("RATE_LIMIT_IDLE_MINUTES", "10"))

	var fieldKey []byte
	if raw := getEnv("FIELD_ENCRYPTION_KEY", ""); raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("FIELD_ENCRYPTION_KEY is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("FIELD_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
		}
		fieldKey = key
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finbalance"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Issuer:    getEnv("JWT_ISSUER", ""),
		},
		Crypto: CryptoConfig{
			FieldKey: fieldKey,
		},
		Cache: CacheConfig{
			TTL:      time.Duration(cacheTTL) * time.Second,
			Capacity: cacheCapacity,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
			IdleExpiry:        time.Duration(idle) * time.Minute,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
