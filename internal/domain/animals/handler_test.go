package animals

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(svc *Service, opts HandlerOptions) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, opts)
	return r
}

type part struct {
	field    string
	filename string // vacío => campo de texto
	content  string
}

func multipartBody(t *testing.T, parts []part) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename == "" {
			if err := mw.WriteField(p.field, p.content); err != nil {
				t.Fatalf("write field: %v", err)
			}
			continue
		}
		fw, err := mw.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write([]byte(p.content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandler_CreateMultipart_UploadsFirstFileOnly(t *testing.T) {
	svc, repo, up := newTestService()
	h := newTestRouter(svc, HandlerOptions{})

	body, ct := multipartBody(t, []part{
		{field: "name", content: "Tiger"},
		{field: "category", content: "wild"},
		{field: "habitat", content: "Forest"},
		{field: "facts", content: "Tigers roar."},
		{field: "image", content: "https://cdn.example/literal.jpg"},
		{field: "image", filename: "tiger.jpg", content: "first"},
		{field: "image", filename: "tiger2.jpg", content: "second"},
		{field: "sound", content: "https://cdn.example/tiger.mp3"},
	})

	req := httptest.NewRequest(http.MethodPost, "/animals", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp animalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Image.URL != "https://media.test/sensory-safari/images/tiger.jpg" {
		t.Fatalf("expected uploaded image url, got %q", resp.Image.URL)
	}
	if resp.Audio.URL != "https://cdn.example/tiger.mp3" || resp.Audio.AssetID != "" {
		t.Fatalf("expected literal sound url, got %#v", resp.Audio)
	}
	if resp.Description != "Tigers roar." {
		t.Fatalf("expected description from facts, got %q", resp.Description)
	}
	if len(up.calls) != 1 || up.calls[0].Body != "first" {
		t.Fatalf("expected only first image uploaded, got %#v", up.calls)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.items))
	}
}

func TestHandler_CreateJSON(t *testing.T) {
	svc, _, _ := newTestService()
	h := newTestRouter(svc, HandlerOptions{})

	req := httptest.NewRequest(http.MethodPost, "/animals", strings.NewReader(`{"name":"Owl","category":"birds","image":"https://cdn.example/owl.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"url":"https://cdn.example/owl.jpg"`) {
		t.Fatalf("expected literal url in body, got %s", rec.Body.String())
	}
}

func TestHandler_Create_DuplicateIs400(t *testing.T) {
	svc, _, _ := newTestService()
	h := newTestRouter(svc, HandlerOptions{})

	for i, want := range []int{http.StatusCreated, http.StatusBadRequest} {
		req := httptest.NewRequest(http.MethodPost, "/animals", strings.NewReader("name=Owl&category=birds"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request #%d: expected %d, got %d body=%s", i+1, want, rec.Code, rec.Body.String())
		}
	}
}

func TestHandler_Create_MissingNameIs400(t *testing.T) {
	svc, _, _ := newTestService()
	h := newTestRouter(svc, HandlerOptions{})

	req := httptest.NewRequest(http.MethodPost, "/animals", strings.NewReader(`{"facts":"no name"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.Message, "name is required") {
		t.Fatalf("expected message about name, got %q", resp.Message)
	}
}

func TestHandler_Create_UploadFailureIs502(t *testing.T) {
	svc, repo, up := newTestService()
	up.failOn[MediaKindImage] = errors.New("quota exceeded")
	h := newTestRouter(svc, HandlerOptions{})

	body, ct := multipartBody(t, []part{
		{field: "name", content: "Gorilla"},
		{field: "image", filename: "gorilla.jpg", content: "img"},
	})
	req := httptest.NewRequest(http.MethodPost, "/animals", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "quota exceeded") {
		t.Fatalf("expected diagnostic detail, got %s", rec.Body.String())
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestHandler_Create_BodyTooLarge(t *testing.T) {
	svc, _, _ := newTestService()
	h := newTestRouter(svc, HandlerOptions{MaxUploadBytes: 16})

	req := httptest.NewRequest(http.MethodPost, "/animals", strings.NewReader(`{"name":"Elephant","facts":"very large body"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHandler_List(t *testing.T) {
	svc, repo, _ := newTestService()
	h := newTestRouter(svc, HandlerOptions{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %q", rec.Code, rec.Body.String())
	}

	repo.err = errors.New("store down")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store failure, got %d", rec.Code)
	}
}
