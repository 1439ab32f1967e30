package cloudinary

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"sensory-safari-api/internal/domain/animals"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type fakeAssets struct {
	uploads   []uploader.UploadParams
	bodies    []string
	destroyed []uploader.DestroyParams

	uploadResp  *uploader.UploadResult
	uploadErr   error
	destroyResp *uploader.DestroyResult
}

func (f *fakeAssets) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	if r, ok := file.(io.Reader); ok {
		b, _ := io.ReadAll(r)
		f.bodies = append(f.bodies, string(b))
	}
	f.uploads = append(f.uploads, params)
	return f.uploadResp, f.uploadErr
}

func (f *fakeAssets) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params)
	if f.destroyResp == nil {
		return &uploader.DestroyResult{Result: "ok"}, nil
	}
	return f.destroyResp, nil
}

func newTestClient(fake *fakeAssets) *Client {
	c := NewClient(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "/sensory-safari/"})
	c.api = fake
	return c
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(Config{CloudName: "demo"})
	if c.IsConfigured() {
		t.Fatalf("expected client without key/secret to be unconfigured")
	}

	_, err := c.Upload(context.Background(), animals.UploadInput{Body: strings.NewReader("x")})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := c.Delete(context.Background(), "a", animals.MediaKindImage); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on delete, got %v", err)
	}
}

func TestClient_Upload_UsesFolderAndKind(t *testing.T) {
	fake := &fakeAssets{uploadResp: &uploader.UploadResult{
		SecureURL: "https://res.example/sensory-safari/audio/abc.mp3",
		PublicID:  "sensory-safari/audio/abc",
	}}
	c := newTestClient(fake)

	m, err := c.Upload(context.Background(), animals.UploadInput{
		Folder:   animals.FolderAudio,
		Kind:     animals.MediaKindVideo,
		Filename: "lion.mp3",
		Body:     strings.NewReader("roar"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if m.URL != "https://res.example/sensory-safari/audio/abc.mp3" || m.AssetID != "sensory-safari/audio/abc" {
		t.Fatalf("unexpected media: %#v", m)
	}
	if len(fake.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(fake.uploads))
	}
	p := fake.uploads[0]
	if p.Folder != "sensory-safari/audio" || p.ResourceType != "video" {
		t.Fatalf("unexpected upload params folder=%q resource_type=%q", p.Folder, p.ResourceType)
	}
	if fake.bodies[0] != "roar" {
		t.Fatalf("unexpected body %q", fake.bodies[0])
	}
}

func TestClient_Upload_ErrorResponse(t *testing.T) {
	fake := &fakeAssets{uploadResp: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	c := newTestClient(fake)

	_, err := c.Upload(context.Background(), animals.UploadInput{Folder: "images", Kind: animals.MediaKindImage, Body: strings.NewReader("x")})
	if !errors.Is(err, ErrUpstream) || !strings.Contains(err.Error(), "Invalid image file") {
		t.Fatalf("expected upstream error with message, got %v", err)
	}

	fake.uploadResp, fake.uploadErr = nil, errors.New("dial tcp: timeout")
	_, err = c.Upload(context.Background(), animals.UploadInput{Folder: "images", Kind: animals.MediaKindImage, Body: strings.NewReader("x")})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on transport error, got %v", err)
	}
}

func TestClient_Delete(t *testing.T) {
	fake := &fakeAssets{}
	c := newTestClient(fake)

	if err := c.Delete(context.Background(), "sensory-safari/images/abc", animals.MediaKindImage); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fake.destroyed) != 1 || fake.destroyed[0].ResourceType != "image" {
		t.Fatalf("unexpected destroy calls: %#v", fake.destroyed)
	}

	fake.destroyResp = &uploader.DestroyResult{Result: "not found"}
	if err := c.Delete(context.Background(), "gone", animals.MediaKindVideo); err != nil {
		t.Fatalf("not found must not be an error, got %v", err)
	}

	if err := c.Delete(context.Background(), "  ", animals.MediaKindImage); err != nil {
		t.Fatalf("empty id must be a no-op, got %v", err)
	}
	if len(fake.destroyed) != 2 {
		t.Fatalf("expected empty id to skip the host, got %d calls", len(fake.destroyed))
	}
}
