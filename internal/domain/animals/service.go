package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sensory-safari-api/internal/platform/logger"
	"sensory-safari-api/internal/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpload envuelve cualquier fallo del media host durante un create.
	ErrUpload = errors.New("media upload failed")
)

// Source identifica quién creó el registro (label de métricas).
const (
	SourceAPI    = "api"
	SourceImport = "import"
)

type Service struct {
	repo     Repository
	uploader MediaUploader
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, uploader MediaUploader, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		uploader: uploader,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	// Key opcional; si viene vacío se usa Name.
	Key         string
	Name        string
	Category    string
	Habitat     string
	Facts       string
	Description string

	// URLs literales (pre-existentes) por slot.
	ImageURL string
	SoundURL string

	// Asset id de media ya alojada (import batch); acompaña al URL literal.
	ImageAssetID string
	SoundAssetID string

	// Adjuntos binarios; tienen prioridad sobre el URL literal del mismo slot.
	Image *Attachment
	Sound *Attachment

	// Source para métricas; por defecto SourceAPI.
	Source string
}

// Create resuelve ambos slots de media y persiste un único registro.
// Si falla cualquier upload no se persiste nada y los assets ya subidos se borran.
func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	// Los valores se guardan tal cual llegan; TrimSpace solo valida presencia.
	name := in.Name
	if strings.TrimSpace(name) == "" {
		return Animal{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	category, ok := ParseCategory(in.Category)
	if !ok {
		return Animal{}, fmt.Errorf("%w: category must be one of wild, farm, birds, insects", ErrInvalidInput)
	}
	key := in.Key
	if strings.TrimSpace(key) == "" {
		key = name
	}

	log := logger.FromContext(ctx, s.log)

	var image, audio Media
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.resolveSlot(gctx, log, imageSlot, Media{URL: in.ImageURL, AssetID: in.ImageAssetID}, in.Image)
		image = m
		return err
	})
	g.Go(func() error {
		m, err := s.resolveSlot(gctx, log, soundSlot, Media{URL: in.SoundURL, AssetID: in.SoundAssetID}, in.Sound)
		audio = m
		return err
	})
	if err := g.Wait(); err != nil {
		s.discard(ctx, log, image, audio)
		return Animal{}, err
	}

	description := in.Description
	if strings.TrimSpace(description) == "" {
		description = in.Facts
	}

	now := s.now()
	a := Animal{
		ID:          uuid.NewString(),
		Key:         key,
		Name:        name,
		Category:    category,
		Habitat:     in.Habitat,
		Facts:       in.Facts,
		Description: description,
		Image:       image,
		Audio:       audio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.discard(ctx, log, image, audio)
		return Animal{}, err
	}

	source := in.Source
	if source == "" {
		source = SourceAPI
	}
	s.metrics.AnimalCreated(source)
	log.Info("animal created", map[string]any{"key": a.Key, "name": a.Name, "source": source})
	return a, nil
}

func (s *Service) resolveSlot(ctx context.Context, log logger.Logger, sl slot, literal Media, att *Attachment) (Media, error) {
	if att == nil || att.Body == nil {
		return literal, nil
	}
	if strings.TrimSpace(literal.URL) != "" {
		log.Debug("attachment supersedes literal url", map[string]any{"slot": sl.name})
	}
	if s.uploader == nil {
		return Media{}, fmt.Errorf("%w: %s: no media uploader configured", ErrUpload, sl.name)
	}

	m, err := s.uploader.Upload(ctx, UploadInput{
		Folder:   sl.folder,
		Kind:     sl.kind,
		Filename: att.Filename,
		Body:     att.Body,
	})
	s.metrics.MediaUpload(string(sl.kind), err)
	if err != nil {
		return Media{}, fmt.Errorf("%w: %s: %v", ErrUpload, sl.name, err)
	}
	return m, nil
}

// discard borra (best-effort) assets subidos en un create que no llegó a persistirse.
func (s *Service) discard(ctx context.Context, log logger.Logger, image, audio Media) {
	if s.uploader == nil {
		return
	}
	for _, it := range []struct {
		m    Media
		kind MediaKind
	}{{image, MediaKindImage}, {audio, MediaKindVideo}} {
		if it.m.AssetID == "" {
			continue
		}
		if err := s.uploader.Delete(context.WithoutCancel(ctx), it.m.AssetID, it.kind); err != nil {
			log.Warn("could not delete orphan asset", map[string]any{"asset_id": it.m.AssetID, "err": err})
		}
	}
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Animal{}
	}
	return items, nil
}

func (s *Service) GetByKey(ctx context.Context, key string) (Animal, error) {
	if strings.TrimSpace(key) == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByKey(ctx, key)
}

// Exists responde si ya hay un registro con esa key exacta.
func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.GetByKey(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Update persiste cambios de metadata; Key e ID no se tocan.
func (s *Service) Update(ctx context.Context, a Animal) (Animal, error) {
	if strings.TrimSpace(a.Key) == "" || strings.TrimSpace(a.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if _, ok := ParseCategory(string(a.Category)); !ok {
		return Animal{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, a.Category)
	}
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}
