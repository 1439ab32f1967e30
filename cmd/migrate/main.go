// migrate sube un directorio local de imágenes (y sus .mp3) al media host y
// crea un registro por imagen. Los que ya existen por key se saltean.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sensory-safari-api/internal/app"
	"sensory-safari-api/internal/config"
	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/domain/imports"
	"sensory-safari-api/internal/platform/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	imagesDir := flag.String("images", cfg.ImagesDir, "directorio de imágenes")
	audioDir := flag.String("audio", cfg.AudioDir, "directorio de audios (<nombre>.mp3)")
	pushgateway := flag.String("pushgateway", cfg.PushgatewayURL, "Pushgateway para las métricas del job (vacío => no se envían)")
	flag.Parse()

	log := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenRepo(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	uploader := app.NewUploader(cfg, log)
	if !uploader.IsConfigured() {
		return imports.ErrNoUploader
	}

	m := metrics.New()
	defer app.PushMetrics(ctx, m, *pushgateway, "migrate", log)

	svc := animals.NewService(repo, uploader, animals.WithLogger(log), animals.WithMetrics(m))
	im := imports.NewImporter(svc, uploader, imports.Options{
		ImagesDir: *imagesDir,
		AudioDir:  *audioDir,
		Logger:    log,
		Progress:  os.Stdout,
	})

	fmt.Printf("Reading images from: %s\n", *imagesDir)
	rep, err := im.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nMigration completed: %d created, %d skipped, %d failed, %d without audio.\n",
		len(rep.Created), len(rep.Skipped), len(rep.Failed), len(rep.MissingAudio))
	return nil
}
