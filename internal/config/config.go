// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// DemoZoneKeyHex is the AES-256 zone key used when none is configured. It is a
// well-known test value and must be replaced outside of demonstrations.
const DemoZoneKeyHex = "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F"

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ServerRoutePrefix is prepended to the PIN block routes (e.g. "/api").
	ServerRoutePrefix string
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// ZoneKeyHex is the clear zone key in hex. 32 bytes selects AES-256-ECB,
	// 16 or 24 bytes select Triple-DES-ECB.
	ZoneKeyHex string
	// ZoneKeyCiphertext is a base64 zone key wrapped by the KMS at KMSKeyURI.
	// Takes precedence over ZoneKeyHex when set.
	ZoneKeyCiphertext string

	// KMSProvider is the KMS provider name used for logging (e.g., "google", "aws", "azure").
	KMSProvider string
	// KMSKeyURI is the gocloud.dev secrets URI of the key wrapping the zone key.
	KMSKeyURI string

	// TransportKeyBits is the RSA modulus size of the transport keypair.
	TransportKeyBits int

	// PinDecodeMode selects how out-of-range PIN length nibbles are handled
	// ("strict" or "lenient").
	PinDecodeMode string

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// RateLimitEnabled indicates whether per-IP rate limiting of PIN block endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for the per-IP rate limiter.
	RateLimitBurst int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:        env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:        env.GetInt("SERVER_PORT", 3001),
		ServerRoutePrefix: env.GetString("SERVER_ROUTE_PREFIX", ""),
		ShutdownTimeout:   env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 15, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Zone key
		ZoneKeyHex:        env.GetString("ZONE_KEY_HEX", DemoZoneKeyHex),
		ZoneKeyCiphertext: env.GetString("ZONE_KEY_CIPHERTEXT", ""),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),

		// Transport keypair
		TransportKeyBits: env.GetInt("TRANSPORT_KEY_BITS", 2048),

		// PIN block decoding
		PinDecodeMode: env.GetString("PIN_DECODE_MODE", "strict"),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Rate Limiting (per IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "pinshield"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
