// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	//Paths
	DBPath string `yaml:"db_path"`
	//Parsing
	NoiseLines []string `yaml:"noise_lines"`
	//Stats rendering
	StatsTopCompanies int `yaml:"stats_top_companies"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	//Set default values if not set
	if cfg.DBPath == "" {
		cfg.DBPath = "responses.db"
	}
	if cfg.StatsTopCompanies == 0 {
		cfg.StatsTopCompanies = 5
	}
	//nil noise list means "use built-in defaults" downstream; an explicit
	//empty list in yaml disables noise filtering.

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg
}
