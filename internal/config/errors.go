package config

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	// ErrMissingStore: el store elegido no tiene cadena de conexión.
	ErrMissingStore = errors.New("store connection string not configured")
)
