package auth

import (
	"os"
	"strconv"
)

// Config holds authentication and throttling settings for the HTTP surface.
type Config struct {
	// APIKeyHash is the bcrypt or argon2id hash of the operator key.
	// Empty disables authentication.
	APIKeyHash string
	// APIKeyHashAlgorithm selects the algorithm used by HashKey (bcrypt or argon2).
	APIKeyHashAlgorithm string
	// BcryptCost is the bcrypt cost factor (default: 12).
	BcryptCost int
	// Argon2Time is the argon2 time parameter.
	Argon2Time uint32
	// Argon2Memory is the argon2 memory parameter in KB.
	Argon2Memory uint32
	// Argon2Threads is the argon2 parallelism parameter.
	Argon2Threads uint8
	// RateLimitPerMinute caps requests per client; 0 disables throttling.
	RateLimitPerMinute int
	// RateBurst is the number of requests allowed at once.
	RateBurst int
}

// Enabled reports whether requests must carry an API key.
func (c Config) Enabled() bool { return c.APIKeyHash != "" }

// LoadConfig loads auth configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKeyHash:          getenv("API_KEY_HASH", ""),
		APIKeyHashAlgorithm: getenv("AUTH_HASH_ALGORITHM", "bcrypt"),
		BcryptCost:          getInt("AUTH_BCRYPT_COST", 12),
		Argon2Time:          uint32(getInt("AUTH_ARGON2_TIME", 1)),
		Argon2Memory:        uint32(getInt("AUTH_ARGON2_MEMORY", 64*1024)),
		Argon2Threads:       uint8(getInt("AUTH_ARGON2_THREADS", 4)),
		RateLimitPerMinute:  getInt("RATE_PER_MIN", 120),
		RateBurst:           getInt("RATE_BURST", 20),
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
