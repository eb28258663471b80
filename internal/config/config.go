package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string

	// Storage selects the repository backend: memory or postgres.
	Storage     string
	DatabaseURL string

	// SettlementSuccessRate is the simulated probability that a pending
	// payment settles successfully.
	SettlementSuccessRate float64
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:           getenv("SERVICE_NAME", "payflow"),
		Env:                   getenv("ENV", "dev"),
		HTTPAddr:              getenv("HTTP_ADDR", ":8080"),
		Storage:               getenv("STORAGE", StorageMemory),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SettlementSuccessRate: 0.7,
	}

	if v := os.Getenv("SETTLEMENT_SUCCESS_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 || rate > 1 {
			return nil, fmt.Errorf("config: SETTLEMENT_SUCCESS_RATE must be in [0, 1], got %q", v)
		}
		cfg.SettlementSuccessRate = rate
	}

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORAGE=postgres")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORAGE %q", cfg.Storage)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
