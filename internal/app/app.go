// Package app arma las dependencias compartidas por los comandos.
package app

import (
	"context"
	"fmt"
	"time"

	"sensory-safari-api/internal/adapters/media/cloudinary"
	mem "sensory-safari-api/internal/adapters/storage/memory"
	mgo "sensory-safari-api/internal/adapters/storage/mongo"
	pg "sensory-safari-api/internal/adapters/storage/postgres"
	"sensory-safari-api/internal/config"
	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/platform/logger"
	"sensory-safari-api/internal/platform/metrics"
)

func NewLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

// OpenRepo abre el store configurado. Sin cadena de conexión falla de
// inmediato. closeFn libera la conexión.
func OpenRepo(ctx context.Context, cfg *config.Config, log logger.Logger) (repo animals.Repository, closeFn func(), err error) {
	dsn, err := cfg.StoreDSN()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart", nil)
		return mem.NewAnimalRepo(), func() {}, nil

	case config.StorePostgres:
		db, err := pg.Open(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("postgres connected", nil)
		return pg.NewAnimalsRepo(db), func() { _ = db.Close() }, nil

	default:
		client, err := mgo.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(mgo.CollectionAnimals)
		if err := mgo.EnsureIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info("mongodb connected", map[string]any{"database": cfg.MongoDatabase})
		return mgo.NewAnimalsRepo(coll), func() { _ = client.Disconnect(context.Background()) }, nil
	}
}

// NewUploader crea el cliente del media host y deja constancia de qué
// credenciales hay. Que falten no es fatal hasta el primer upload.
func NewUploader(cfg *config.Config, log logger.Logger) *cloudinary.Client {
	c := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.MediaFolder,
	})

	fields := map[string]any{
		"cloud_name": cfg.CloudinaryCloudName,
		"api_key":    presence(cfg.CloudinaryAPIKey),
		"api_secret": presence(cfg.CloudinaryAPISecret),
	}
	if c.IsConfigured() {
		log.Info("media host configured", fields)
	} else {
		log.Warn("media host credentials missing, uploads will fail", fields)
	}
	return c
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "present"
}

// PushMetrics envía las métricas de un job batch al terminar. Usa un contexto
// propio: tras un SIGINT el del job ya está cancelado. Un fallo solo se loguea.
func PushMetrics(ctx context.Context, m *metrics.Metrics, url, job string, log logger.Logger) {
	if url == "" {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := m.Push(pctx, url, job); err != nil {
		log.Warn("could not push metrics", map[string]any{"job": job, "err": err})
		return
	}
	log.Info("metrics pushed", map[string]any{"job": job, "gateway": url})
}
