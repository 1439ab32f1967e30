package router

import (
	"net/http"

	_ "sensory-safari-api/docs"

	mem "sensory-safari-api/internal/adapters/storage/memory"
	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/middleware"
	"sensory-safari-api/internal/platform/logger"
	"sensory-safari-api/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Liveness es el texto de GET /.
const Liveness = "Sensory Safari API is running"

type Options struct {
	// Opcional: si no viene, in-memory.
	Repo animals.Repository

	// Puede ser nil: los creates con adjuntos fallan con 502.
	Uploader animals.MediaUploader

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// AllowedOrigin es el frontend (CORS). Vacío => solo same-origin.
	AllowedOrigin string

	// MaxUploadBytes limita el body del create. 0 => sin límite.
	MaxUploadBytes int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(opts.AllowedOrigin))
	r.Use(metrics.HTTPMiddleware(opts.Metrics))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(Liveness))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewAnimalRepo()
	}

	animalsSvc := animals.NewService(repo, opts.Uploader,
		animals.WithLogger(log),
		animals.WithMetrics(opts.Metrics),
	)
	hopts := animals.HandlerOptions{MaxUploadBytes: opts.MaxUploadBytes, Logger: log}

	// Mismas rutas con y sin prefijo /api.
	animals.RegisterRoutes(r, animalsSvc, hopts)
	r.Route("/api", func(api chi.Router) {
		animals.RegisterRoutes(api, animalsSvc, hopts)
	})

	return r
}
