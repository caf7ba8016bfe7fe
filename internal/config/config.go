package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Port         string  `envconfig:"PORT" default:"8080"`
	StoreDriver  string  `envconfig:"STORE_DRIVER" default:"sqlite"`
	DBDSN        string  `envconfig:"DB_DSN" default:"storefront.db"` // sqlite file in project root
	RedisAddr    string  `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	LogFile      string  `envconfig:"LOG_FILE" default:"./storefront.log"`
	ShippingFee  float64 `envconfig:"SHIPPING_FEE" default:"9.95"`
	TemplatesDir string  `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file, using environment")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.ShippingFee < 0 {
		return Config{}, fmt.Errorf("config: SHIPPING_FEE must not be negative")
	}
	log.Printf("[config] PORT=%s STORE_DRIVER=%s DB_DSN=%s REDIS_ADDR=%s LOG_FILE=%s SHIPPING_FEE=%.2f",
		cfg.Port, cfg.StoreDriver, cfg.DBDSN, cfg.RedisAddr, cfg.LogFile, cfg.ShippingFee)
	return cfg, nil
}
