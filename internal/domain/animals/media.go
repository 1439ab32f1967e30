package animals

import (
	"context"
	"io"
)

// MediaKind es el tipo de recurso que entiende el media host.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	// El host trata el audio como recurso "video".
	MediaKindVideo MediaKind = "video"
)

// Carpetas destino por slot.
const (
	FolderImages = "images"
	FolderAudio  = "audio"
)

// Attachment es un archivo binario recibido para un slot.
type Attachment struct {
	Filename string
	Body     io.Reader
}

type UploadInput struct {
	Folder   string
	Kind     MediaKind
	Filename string
	Body     io.Reader
}

// MediaUploader sube binarios al media host externo.
type MediaUploader interface {
	Upload(ctx context.Context, in UploadInput) (Media, error)
	Delete(ctx context.Context, assetID string, kind MediaKind) error
}

// slot describe cómo se resuelve cada campo de media.
type slot struct {
	name   string
	folder string
	kind   MediaKind
}

var (
	imageSlot = slot{name: "image", folder: FolderImages, kind: MediaKindImage}
	soundSlot = slot{name: "sound", folder: FolderAudio, kind: MediaKindVideo}
)
