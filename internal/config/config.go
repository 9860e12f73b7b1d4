package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port       string        `envconfig:"PORT" default:"8080"`
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"0s"` // 0 leaves the transport default
	// LatestFilterWins drops product responses that belong to a superseded filter.
	LatestFilterWins bool   `envconfig:"LATEST_FILTER_WINS" default:"false"`
	LogFile          string `envconfig:"LOG_FILE"`

	// catalogd
	CatalogPort string `envconfig:"CATALOG_PORT" default:"8000"`
	DBDSN       string `envconfig:"DB_DSN" default:"catalog.db"`
	Seed        bool   `envconfig:"SEED" default:"true"`
}

// Process reads the environment into a Config without touching .env files.
func Process() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not load .env: %v", err)
	}
	cfg, err := Process()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s API_TIMEOUT=%s LATEST_FILTER_WINS=%t LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.APITimeout, cfg.LatestFilterWins, cfg.LogFile)
	return cfg
}
