package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	DataDir     string

	// Fixed fees shown on the payment receipt, in rupiah.
	DeliveryFee int64
	ServiceFee  int64
}

func LoadConfig() *Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 15*time.Second),
		DataDir:     getEnv("DATA_DIR", defaultDataDir()),
		DeliveryFee: getInt64("DELIVERY_FEE", 10000),
		ServiceFee:  getInt64("SERVICE_FEE", 1000),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".foody"
	}
	return home + "/.foody"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return d
}
