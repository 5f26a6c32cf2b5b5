// Package config builds server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string
	MetricsAddr        string
	Environment        string
	LogLevel           string
	CORSAllowedOrigins []string
	TrustedProxies     []string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxBodyBytes       int64
	// CatalogPath overrides the embedded app catalog when set.
	CatalogPath string
	// OTLPEndpoint enables span export when set.
	OTLPEndpoint     string
	TraceSampleRatio float64
}

const (
	DefaultAddr            = ":5000"
	DefaultMetricsAddr     = ":9090"
	DefaultEnvironment     = "development"
	DefaultLogLevel        = "info"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
)

// FromEnv loads .env when present and then reads the process environment.
// Invalid numeric or duration values fall back to their defaults.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("CONSENT_API_ADDR")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = DefaultAddr
		}
	}

	return Server{
		Addr:               addr,
		MetricsAddr:        getEnv("METRICS_ADDR", DefaultMetricsAddr),
		Environment:        getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		MaxBodyBytes:       getEnvInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TraceSampleRatio:   getEnvFloat("TRACE_SAMPLE_RATIO", 1),
	}
}

func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
