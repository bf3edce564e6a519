package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	MongoURI string
	MongoDB  string

	JWTSecret    string
	TokenTTLDays int

	CORSOrigins  []string
	OTLPEndpoint string

	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Load reads configuration from the environment. The token signing secret
// has no fallback: startup fails when it is missing.
func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnvInt("PORT", 3000),
		MongoURI:       getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getEnv("MONGO_DB", "storefront"),
		JWTSecret:      secret,
		TokenTTLDays:   getEnvInt("TOKEN_TTL_DAYS", 7),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "")),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", ""),
		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}, nil
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
