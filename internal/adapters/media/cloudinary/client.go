package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"sensory-safari-api/internal/domain/animals"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrNotConfigured = errors.New("media host not configured")
	ErrUpstream      = errors.New("media host upstream error")
)

// Config del media host. Las credenciales vienen de env vars.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string

	// Folder raíz; cada slot sube a <Folder>/<images|audio>.
	Folder string

	// Timeout por operación.
	Timeout time.Duration
}

// assetAPI es el subconjunto del SDK que se usa.
type assetAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Client implementa animals.MediaUploader. El SDK se inicializa en el primer uso,
// así el servicio arranca aunque falten credenciales.
type Client struct {
	cfg Config

	once    sync.Once
	api     assetAPI
	initErr error
}

var _ animals.MediaUploader = (*Client)(nil)

func NewClient(cfg Config) *Client {
	cfg.CloudName = strings.TrimSpace(cfg.CloudName)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APISecret = strings.TrimSpace(cfg.APISecret)
	cfg.Folder = strings.Trim(strings.TrimSpace(cfg.Folder), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{cfg: cfg}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.cfg.CloudName != "" && c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

func (c *Client) assets() (assetAPI, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	c.once.Do(func() {
		if c.api != nil {
			return
		}
		cld, err := cloudinary.NewFromParams(c.cfg.CloudName, c.cfg.APIKey, c.cfg.APISecret)
		if err != nil {
			c.initErr = fmt.Errorf("%w: %v", ErrNotConfigured, err)
			return
		}
		c.api = &cld.Upload
	})
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.api, nil
}

// Upload sube el binario y devuelve la URL segura y el public id.
func (c *Client) Upload(ctx context.Context, in animals.UploadInput) (animals.Media, error) {
	api, err := c.assets()
	if err != nil {
		return animals.Media{}, err
	}
	if in.Body == nil {
		return animals.Media{}, errors.New("upload body is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := api.Upload(ctx, in.Body, uploader.UploadParams{
		Folder:       c.folder(in.Folder),
		ResourceType: string(in.Kind),
	})
	if err != nil {
		return animals.Media{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp == nil {
		return animals.Media{}, fmt.Errorf("%w: empty response", ErrUpstream)
	}
	if msg := resp.Error.Message; msg != "" {
		return animals.Media{}, fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	if resp.SecureURL == "" {
		return animals.Media{}, fmt.Errorf("%w: response missing secure_url", ErrUpstream)
	}

	return animals.Media{URL: resp.SecureURL, AssetID: resp.PublicID}, nil
}

// Delete borra un asset. Un asset inexistente no es error.
func (c *Client) Delete(ctx context.Context, assetID string, kind animals.MediaKind) error {
	api, err := c.assets()
	if err != nil {
		return err
	}
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     assetID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp == nil {
		return nil
	}
	if msg := resp.Error.Message; msg != "" {
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	switch resp.Result {
	case "", "ok", "not found":
		return nil
	default:
		return fmt.Errorf("%w: destroy result=%s", ErrUpstream, resp.Result)
	}
}

func (c *Client) folder(sub string) string {
	sub = strings.Trim(sub, "/")
	switch {
	case c.cfg.Folder == "":
		return sub
	case sub == "":
		return c.cfg.Folder
	default:
		return path.Join(c.cfg.Folder, sub)
	}
}
