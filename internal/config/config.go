package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	JWT    JWTConfig    `yaml:"jwt"`
	Seed   SeedConfig   `yaml:"seed"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type StoreConfig struct {
	DataFile  string `yaml:"data_file"`  // the single JSON document
	UploadDir string `yaml:"upload_dir"` // flat blob directory
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	// ExpireHour <= 0 issues tokens without an expiry claim: the portal
	// models no session expiry, sessions end on explicit logout.
	ExpireHour int `yaml:"expire_hour"`
}

type SeedConfig struct {
	SuperadminName string `yaml:"superadmin_name"`
	SuperadminPIN  string `yaml:"superadmin_pin"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the YAML file at configPath (falling
// back to defaults when absent), then applies .env and environment
// overrides.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Store: StoreConfig{
			DataFile:  "data/portal.json",
			UploadDir: "data/uploads",
		},
		JWT: JWTConfig{
			Secret:     "bomspace-secret-key-change-in-production",
			ExpireHour: 0,
		},
		Seed: SeedConfig{
			SuperadminName: "superadmin",
			SuperadminPIN:  "0000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		c.Store.DataFile = dataFile
	}
	if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
		c.Store.UploadDir = uploadDir
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if name := os.Getenv("SEED_SUPERADMIN_NAME"); name != "" {
		c.Seed.SuperadminName = name
	}
	if pin := os.Getenv("SEED_SUPERADMIN_PIN"); pin != "" {
		c.Seed.SuperadminPIN = pin
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
