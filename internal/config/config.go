package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"`
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config.yaml and applies environment overrides.
// When DATABASE_PATH is set (tests, containers), the yaml file is optional.
func LoadConfig() {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	} else if os.Getenv("DATABASE_PATH") == "" {
		log.Printf("Config file %s not found, using defaults", configPath)
	}

	applyEnvOverrides(cfg)
	AppConfig = cfg
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Database.Path = "./db/app.db"
	cfg.JWT.Secret = "change-me-in-production"
	cfg.JWT.TTLHours = 72
	cfg.Storage.BasePath = "./uploads"
	cfg.Upload.MaxSize = 32 << 20
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
}
