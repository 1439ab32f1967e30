package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Variables que controlan la carga en sí.
const (
	EnvConfigFile = "CONFIG_FILE"
	EnvDotenvFile = "ENV_FILE"
)

// knownKeys son las claves que se aceptan desde env; el resto se ignora.
var knownKeys = map[string]bool{
	"port": true, "app_name": true,
	"store": true, "mongodb_uri": true, "mongo_uri": true, "mongodb_database": true, "db_dsn": true,
	"frontend_url":          true,
	"cloudinary_cloud_name": true, "cloudinary_api_key": true, "cloudinary_api_secret": true,
	"media_folder": true, "max_upload_mb": true,
	"log_level": true, "log_format": true,
	"images_dir": true, "audio_dir": true, "reference_file": true, "pushgateway_url": true,
}

// Load arma la Config en capas (de menor a mayor precedencia):
//  1. defaults (New)
//  2. archivo YAML si CONFIG_FILE está definido
//  3. env vars, incluidas las de .env (ENV_FILE), sin pisar las reales
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// MONGODB_URI -> mongodb_uri
	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if !knownKeys[key] {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(cfg.FrontendURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv() error {
	path := os.Getenv(EnvDotenvFile)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	return nil
}
