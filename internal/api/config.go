package api

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for the HTTP surface.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxBodyBytes caps the size of calculation requests.
	MaxBodyBytes int64
	// MaxHistoryLimit caps the limit query parameter of history listings.
	MaxHistoryLimit int
	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP set the client
	// address. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

func LoadConfig() Config {
	return Config{
		Addr:            getenv("HTTP_ADDR", ":8080"),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:    int64(getInt("HTTP_MAX_BODY_BYTES", 64<<10)),
		MaxHistoryLimit: getInt("HISTORY_MAX_LIMIT", 1000),

		TrustProxyHeaders: getBool("TRUST_PROXY_HEADERS", false),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
