package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUserAgent is sent with every product page request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/41.0.2272.0 Safari/537.36"

type Config struct {
	CatalogPath string
	HistoryPath string
	ChartPath   string
	ServeAddr   string

	UserAgent string
	CacheDir  string
	Timeout   time.Duration
	Delay     time.Duration

	// Strict aborts the whole run on the first failing product.
	Strict bool
	// LegacyEmptyHistory treats a zero byte history file as "already recorded today".
	LegacyEmptyHistory bool

	LogLevel string
}

// Load reads an optional .env file and fills Config from the environment.
func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		CatalogPath:        getEnv("PRICETRACKER_CATALOG", "products.csv"),
		HistoryPath:        getEnv("PRICETRACKER_HISTORY", "prices.csv"),
		ChartPath:          getEnv("PRICETRACKER_CHART", "prices.html"),
		ServeAddr:          getEnv("PRICETRACKER_ADDR", ":8080"),
		UserAgent:          getEnv("PRICETRACKER_USER_AGENT", DefaultUserAgent),
		CacheDir:           getEnv("PRICETRACKER_CACHE_DIR", ""),
		Timeout:            getEnvAsDuration("PRICETRACKER_TIMEOUT", 30*time.Second),
		Delay:              getEnvAsDuration("PRICETRACKER_DELAY", 0),
		Strict:             getEnvAsBool("PRICETRACKER_STRICT", false),
		LegacyEmptyHistory: getEnvAsBool("PRICETRACKER_LEGACY_EMPTY_HISTORY", false),
		LogLevel:           getEnv("PRICETRACKER_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// Durations accept "30s" style values or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
