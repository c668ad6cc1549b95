// Package config loads runtime configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all tunables for the record book process.
type Config struct {
	HTTPPort         string
	DBPath           string
	BackupDir        string
	AutoSaveInterval time.Duration
	PerLiterDiscount decimal.Decimal
}

// Load reads configuration from a .env file (when present) and the
// environment, with working defaults for a fresh checkout.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:         getenv("HTTP_PORT", "8080"),
		DBPath:           getenv("DB_PATH", "fuelrecord.db"),
		BackupDir:        getenv("BACKUP_DIR", "backup"),
		AutoSaveInterval: 30 * time.Second,
		PerLiterDiscount: decimal.NewFromInt(1),
	}

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		log.Printf("[Config] invalid HTTP_PORT %q, defaulting to 8080", cfg.HTTPPort)
		cfg.HTTPPort = "8080"
	}

	if v := os.Getenv("AUTOSAVE_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			log.Printf("[Config] invalid AUTOSAVE_SECONDS %q, keeping %v", v, cfg.AutoSaveInterval)
		} else {
			cfg.AutoSaveInterval = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("PER_LITER_DISCOUNT"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.Sign() <= 0 {
			log.Printf("[Config] invalid PER_LITER_DISCOUNT %q, keeping %v", v, cfg.PerLiterDiscount)
		} else {
			cfg.PerLiterDiscount = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
