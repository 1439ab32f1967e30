// Package config carga la configuración del servicio y de los comandos batch.
package config

import (
	"fmt"
	"strings"
)

// Stores soportados.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port    string `koanf:"port"`
	AppName string `koanf:"app_name"`

	// Store elige el adapter de persistencia: mongo | postgres | memory.
	Store         string `koanf:"store"`
	MongoURI      string `koanf:"mongodb_uri"`
	MongoURIAlt   string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongodb_database"`
	PostgresDSN   string `koanf:"db_dsn"`

	// FrontendURL es el único origen permitido por CORS. Vacío => solo same-origin.
	FrontendURL string `koanf:"frontend_url"`

	CloudinaryCloudName string `koanf:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `koanf:"cloudinary_api_key"`
	CloudinaryAPISecret string `koanf:"cloudinary_api_secret"`
	MediaFolder         string `koanf:"media_folder"`
	MaxUploadMB         int    `koanf:"max_upload_mb"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Batch.
	ImagesDir     string `koanf:"images_dir"`
	AudioDir      string `koanf:"audio_dir"`
	ReferenceFile string `koanf:"reference_file"`
	// PushgatewayURL recibe las métricas de los jobs batch al terminar. Vacío => no se envían.
	PushgatewayURL string `koanf:"pushgateway_url"`
}

// New devuelve la configuración por defecto.
func New() *Config {
	return &Config{
		Port:          "5000",
		AppName:       "sensory-safari-api",
		Store:         StoreMongo,
		MongoDatabase: "sensory-safari",
		MediaFolder:   "sensory-safari",
		MaxUploadMB:   25,
		LogLevel:      "info",
		LogFormat:     "text",
		ImagesDir:     "images",
		AudioDir:      "audio",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: max_upload_mb must be positive", ErrInvalidConfig)
	}
	return nil
}

// StoreDSN devuelve la cadena de conexión del store elegido.
// MONGO_URI se acepta como alias de MONGODB_URI.
func (c *Config) StoreDSN() (string, error) {
	var dsn string
	switch c.Store {
	case StoreMongo:
		dsn = firstNonEmpty(c.MongoURI, c.MongoURIAlt)
	case StorePostgres:
		dsn = c.PostgresDSN
	case StoreMemory:
		return "", nil
	default:
		return "", fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if dsn == "" {
		return "", fmt.Errorf("%w: store=%s", ErrMissingStore, c.Store)
	}
	return dsn, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) MediaConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Presence reporta qué claves sensibles están definidas, sin exponer valores.
type Presence struct {
	Key     string
	Defined bool
}

func (c *Config) Presence() []Presence {
	return []Presence{
		{Key: "MONGODB_URI", Defined: c.MongoURI != ""},
		{Key: "MONGO_URI", Defined: c.MongoURIAlt != ""},
		{Key: "DB_DSN", Defined: c.PostgresDSN != ""},
		{Key: "FRONTEND_URL", Defined: c.FrontendURL != ""},
		{Key: "CLOUDINARY_CLOUD_NAME", Defined: c.CloudinaryCloudName != ""},
		{Key: "CLOUDINARY_API_KEY", Defined: c.CloudinaryAPIKey != ""},
		{Key: "CLOUDINARY_API_SECRET", Defined: c.CloudinaryAPISecret != ""},
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
