package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"

	AIBackendMock = "mock"
	AIBackendHTTP = "http"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	FrontendURL string // Frontend base URL (for the report QR code)

	StorageDriver       string // "postgres" or "mongo"
	DatabaseURL         string
	MongoURI            string
	MongoDatabase       string
	DBConnectRetries    int
	DBConnectRetryDelay time.Duration

	RedisURL string

	JWTSecret         string // Secret key for JWT token signing
	JWTTTL            int    // JWT token expiration time in hours
	AllowUserIDHeader bool   // Accept x-user-id header / userId query as identity

	AIBackend     string
	AIBaseURL     string
	AIAPIKey      string
	AIMockLatency time.Duration
	AICacheTTL    time.Duration

	ReportTempDir       string
	ReportCleanupDelay  time.Duration
	ReportArchiveBucket string
	AWSRegion           string

	LogLevel  string
	LogFormat string

	RateLimitRPS       float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int     // Burst size for rate limiting
	RateLimitAuthRPS   float64 // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst int     // Burst size for auth endpoints
	RateLimitAIRPS     float64 // Rate limit for chat, analysis and reports
	RateLimitAIBurst   int     // Burst size for AI-backed endpoints
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	// Missing .env is fine; the environment is the source of truth.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "5000"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", ""), "/"),

		StorageDriver:       strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MongoURI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "health-dashboard"),
		DBConnectRetries:    getEnvInt("DB_CONNECT_RETRIES", 5),
		DBConnectRetryDelay: getEnvDuration("DB_CONNECT_RETRY_DELAY", 5*time.Second),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getEnvInt("JWT_TTL_HOURS", 168), // 7 days
		AllowUserIDHeader: getEnvBool("ALLOW_USER_ID_HEADER", true),

		AIBackend:     strings.ToLower(getEnv("AI_BACKEND", AIBackendMock)),
		AIBaseURL:     strings.TrimRight(getEnv("AI_BASE_URL", ""), "/"),
		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIMockLatency: getEnvDuration("AI_MOCK_LATENCY", 500*time.Millisecond),
		AICacheTTL:    getEnvDuration("AI_CACHE_TTL", 10*time.Minute),

		ReportTempDir:       getEnv("REPORT_TEMP_DIR", "temp"),
		ReportCleanupDelay:  getEnvDuration("REPORT_CLEANUP_DELAY", 5*time.Second),
		ReportArchiveBucket: getEnv("REPORT_ARCHIVE_BUCKET", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),      // 10 requests per second for general API
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),      // Allow bursts of 20
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 1),  // 1 request per second for auth
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 5),  // Allow bursts of 5
		RateLimitAIRPS:     getEnvFloat("RATE_LIMIT_AI_RPS", 2),    // 2 requests per second for AI-backed routes
		RateLimitAIBurst:   getEnvInt("RATE_LIMIT_AI_BURST", 5),    // Allow bursts of 5
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	case StorageDriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORAGE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	switch c.AIBackend {
	case AIBackendMock:
	case AIBackendHTTP:
		if c.AIBaseURL == "" {
			errs = append(errs, errors.New("AI_BASE_URL is required when AI_BACKEND=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AI_BACKEND %q", c.AIBackend))
	}
	if c.DBConnectRetries < 1 {
		errs = append(errs, errors.New("DB_CONNECT_RETRIES must be at least 1"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("5s") or plain milliseconds ("5000").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
