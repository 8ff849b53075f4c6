package report

import (
	"os"
	"time"
)

// Config holds environment-driven settings for report rendering.
type Config struct {
	ChromiumPath string
	Timeout      time.Duration
	TimeZone     string
	Locale       string
}

func LoadConfig() Config {
	return Config{
		ChromiumPath: getenv("PDF_CHROMIUM_PATH", ""),
		Timeout:      getDuration("PDF_TIMEOUT", 15*time.Second),
		TimeZone:     getenv("PDF_TIMEZONE", "America/Bogota"),
		Locale:       getenv("PDF_LOCALE", "es"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
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
