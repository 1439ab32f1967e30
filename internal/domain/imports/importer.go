// Package imports carga en el catálogo un directorio local de imágenes y audios.
package imports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/platform/logger"
)

var (
	ErrImagesDir  = errors.New("images directory not found")
	ErrNoUploader = errors.New("media uploader not configured")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

const audioExtension = ".mp3"

// Catalog es lo que el importer necesita del servicio de animals.
type Catalog interface {
	Exists(ctx context.Context, key string) (bool, error)
	Create(ctx context.Context, in animals.CreateInput) (animals.Animal, error)
}

type Options struct {
	ImagesDir string
	AudioDir  string

	Logger logger.Logger
	// Progress recibe las líneas "[i/n] ..."; nil => descartadas.
	Progress io.Writer
}

// Report resume una corrida; los slices tienen nombres derivados.
type Report struct {
	Found        int
	Created      []string
	Skipped      []string
	Failed       []string
	MissingAudio []string
}

type Importer struct {
	catalog  Catalog
	uploader animals.MediaUploader
	opts     Options
}

func NewImporter(c Catalog, u animals.MediaUploader, opts Options) *Importer {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Importer{catalog: c, uploader: u, opts: opts}
}

// Run procesa las imágenes de a una. Los fallos de un animal no cortan la
// corrida; sí la cortan los de setup o de consulta al store.
func (im *Importer) Run(ctx context.Context) (Report, error) {
	var rep Report

	if im.uploader == nil {
		return rep, ErrNoUploader
	}
	files, err := im.imageFiles()
	if err != nil {
		return rep, err
	}
	rep.Found = len(files)
	fmt.Fprintf(im.opts.Progress, "Found %d images to process.\n", len(files))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		name := strings.TrimSuffix(file, filepath.Ext(file))
		log := im.opts.Logger.With(map[string]any{"name": name})
		fmt.Fprintf(im.opts.Progress, "[%d/%d] Processing %s...\n", i+1, len(files), name)

		exists, err := im.catalog.Exists(ctx, name)
		if err != nil {
			return rep, fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			rep.Skipped = append(rep.Skipped, name)
			fmt.Fprintf(im.opts.Progress, "  skipping %s, already exists\n", name)
			continue
		}

		image, err := im.upload(ctx, filepath.Join(im.opts.ImagesDir, file), animals.FolderImages, animals.MediaKindImage)
		if err != nil {
			rep.Failed = append(rep.Failed, name)
			log.Error("image upload failed", map[string]any{"err": err})
			fmt.Fprintf(im.opts.Progress, "  failed to upload image for %s\n", name)
			continue
		}

		audio, err := im.uploadAudio(ctx, name)
		switch {
		case errors.Is(err, os.ErrNotExist):
			rep.MissingAudio = append(rep.MissingAudio, name)
			fmt.Fprintf(im.opts.Progress, "  no audio file found for %s\n", name)
		case err != nil:
			log.Warn("audio upload failed, slot left empty", map[string]any{"err": err})
		}

		if _, err := im.catalog.Create(ctx, animals.CreateInput{
			Key:          name,
			Name:         name,
			Description:  "Description for " + name,
			ImageURL:     image.URL,
			ImageAssetID: image.AssetID,
			SoundURL:     audio.URL,
			SoundAssetID: audio.AssetID,
			Source:       animals.SourceImport,
		}); err != nil {
			rep.Failed = append(rep.Failed, name)
			log.Error("create failed", map[string]any{"err": err})
			continue
		}
		rep.Created = append(rep.Created, name)
		fmt.Fprintf(im.opts.Progress, "  saved %s\n", name)
	}
	return rep, nil
}

// imageFiles lista las imágenes válidas, ordenadas por nombre.
func (im *Importer) imageFiles() ([]string, error) {
	info, err := os.Stat(im.opts.ImagesDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrImagesDir, im.opts.ImagesDir)
	}
	entries, err := os.ReadDir(im.opts.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", im.opts.ImagesDir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// uploadAudio devuelve os.ErrNotExist si no hay <name>.mp3.
func (im *Importer) uploadAudio(ctx context.Context, name string) (animals.Media, error) {
	if im.opts.AudioDir == "" {
		return animals.Media{}, os.ErrNotExist
	}
	path := filepath.Join(im.opts.AudioDir, name+audioExtension)
	if _, err := os.Stat(path); err != nil {
		return animals.Media{}, os.ErrNotExist
	}
	return im.upload(ctx, path, animals.FolderAudio, animals.MediaKindVideo)
}

func (im *Importer) upload(ctx context.Context, path, folder string, kind animals.MediaKind) (animals.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return animals.Media{}, err
	}
	defer f.Close()

	return im.uploader.Upload(ctx, animals.UploadInput{
		Folder:   folder,
		Kind:     kind,
		Filename: filepath.Base(path),
		Body:     f,
	})
}
