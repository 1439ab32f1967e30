// debug-env muestra qué variables de configuración están definidas, sin valores.
package main

import (
	"fmt"
	"os"

	"sensory-safari-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Environment variables loaded:")
	fmt.Printf("  %-24s %s\n", "STORE", cfg.Store)
	for _, p := range cfg.Presence() {
		state := "Undefined"
		if p.Defined {
			state = "Defined"
		}
		fmt.Printf("  %-24s %s\n", p.Key, state)
	}

	if _, err := cfg.StoreDSN(); err != nil {
		fmt.Printf("\nstore: %v\n", err)
	}
	if !cfg.MediaConfigured() {
		fmt.Println("media host: credentials incomplete")
	}
}
