package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	DABaseURL        string
	DATargetURL      string
	FetchTimeoutMs   int
	FetchRateLimitPS int
	FetchUserAgent   string

	HTTPAddr string
	APIKey   string

	AMQPURL          string
	AMQPRequestQueue string
	AMQPResultQueue  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DABaseURL:        getEnv("DA_BASE_URL", "https://www.da.gov.ph"),
		DATargetURL:      getEnv("DA_TARGET_URL", "https://www.da.gov.ph/price-monitoring/"),
		FetchTimeoutMs:   getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchRateLimitPS: getEnvInt("FETCH_RATE_LIMIT_RPS", 2),
		FetchUserAgent:   getEnv("FETCH_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		APIKey:   getEnv("API_KEY", ""),

		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPRequestQueue: getEnv("AMQP_REQUEST_QUEUE", "scrape_request_queue"),
		AMQPResultQueue:  getEnv("AMQP_RESULT_QUEUE", "scraped_data_queue"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
