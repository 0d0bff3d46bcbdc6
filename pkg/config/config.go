package config

import (
	"os"
	"strconv"
)

// Config holds server configuration.
type Config struct {
	Port     string
	LogLevel string

	// LedgerDriver selects where evaluations persist: "memory", "sqlite"
	// or "postgres".
	LedgerDriver string
	SQLitePath   string
	DatabaseURL  string

	// Catalog and background graph override paths. Empty means the
	// built-in EU AI Act defaults.
	CatalogPath    string
	BackgroundPath string

	// Inference settings.
	MaxPasses int
	Parallel  bool
	Workers   int

	// API settings.
	JWTSecret     string
	RateLimitRPS  float64
	RedisURL      string
	ExportBackend string // "local", "s3" or "gcs"
	ExportPath    string
	ExportBucket  string

	// Telemetry.
	OTLPEndpoint string
	OTelEnabled  bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	driver := os.Getenv("LEDGER_DRIVER")
	if driver == "" {
		driver = "memory"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "aicomply.db"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// Default to local generic postgres
		dbURL = "postgres://aicomply@localhost:5432/aicomply?sslmode=disable"
	}

	exportBackend := os.Getenv("EXPORT_BACKEND")
	if exportBackend == "" {
		exportBackend = "local"
	}
	exportPath := os.Getenv("EXPORT_PATH")
	if exportPath == "" {
		exportPath = "exports"
	}

	return &Config{
		Port:           port,
		LogLevel:       logLevel,
		LedgerDriver:   driver,
		SQLitePath:     sqlitePath,
		DatabaseURL:    dbURL,
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		BackgroundPath: os.Getenv("BACKGROUND_PATH"),
		MaxPasses:      envInt("MAX_PASSES", 100),
		Parallel:       os.Getenv("PARALLEL_INFERENCE") == "true",
		Workers:        envInt("INFERENCE_WORKERS", 4),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 10),
		RedisURL:       os.Getenv("REDIS_URL"),
		ExportBackend:  exportBackend,
		ExportPath:     exportPath,
		ExportBucket:   os.Getenv("EXPORT_BUCKET"),
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
		OTelEnabled:    os.Getenv("OTEL_ENABLED") == "true",
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
