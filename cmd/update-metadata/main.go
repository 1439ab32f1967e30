// update-metadata aplica la lista canónica (categoría, hábitat, datos y
// opcionalmente el nombre visible) a los registros existentes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sensory-safari-api/internal/app"
	"sensory-safari-api/internal/config"
	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/domain/catalog"
	"sensory-safari-api/internal/platform/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "metadata update failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	refPath := flag.String("reference", cfg.ReferenceFile, "lista canónica YAML (vacío => la embebida)")
	rename := flag.Bool("rename", true, "reemplazar también el nombre visible")
	dryRun := flag.Bool("dry-run", false, "no escribir, solo reportar")
	pushgateway := flag.String("pushgateway", cfg.PushgatewayURL, "Pushgateway para las métricas del job (vacío => no se envían)")
	flag.Parse()

	log := app.NewLogger(cfg)

	ref, err := catalog.LoadReference(*refPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenRepo(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	m := metrics.New()
	defer app.PushMetrics(ctx, m, *pushgateway, "update-metadata", log)

	svc := animals.NewService(repo, nil, animals.WithLogger(log), animals.WithMetrics(m))
	rep, err := catalog.NewNormalizer(svc, catalog.Options{
		Rename:  *rename,
		DryRun:  *dryRun,
		Logger:  log,
		Metrics: m,
	}).Run(ctx, ref)
	if err != nil {
		return err
	}

	for _, name := range rep.Updated {
		fmt.Printf("Updated %s\n", name)
	}
	for _, name := range rep.Unmatched {
		fmt.Printf("Could not find match for %s\n", name)
	}
	for _, a := range rep.Ambiguous {
		fmt.Printf("Ambiguous match for %s: %s\n", a.Name, strings.Join(a.Keys, ", "))
	}
	for _, f := range rep.Failed {
		fmt.Printf("Failed to update %s (%s): %v\n", f.Name, f.Key, f.Err)
	}
	fmt.Printf("Metadata update complete: %d updated, %d unmatched, %d ambiguous, %d failed.\n",
		len(rep.Updated), len(rep.Unmatched), len(rep.Ambiguous), len(rep.Failed))

	if len(rep.Failed) > 0 {
		return fmt.Errorf("%d updates failed", len(rep.Failed))
	}
	return nil
}
