package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPush_SendsRegistryToGateway(t *testing.T) {
	var (
		method, path string
		bodyLen      int
	)
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		bodyLen = len(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer gw.Close()

	m := New()
	m.NormalizerEntry("updated")

	if err := m.Push(context.Background(), gw.URL, "update-metadata"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if method != http.MethodPut || path != "/metrics/job/update-metadata" {
		t.Fatalf("unexpected push request %s %s", method, path)
	}
	if bodyLen == 0 {
		t.Fatalf("expected metric families in push body")
	}
}

func TestPush_GatewayErrorIsReturned(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gw.Close()

	m := New()
	m.AnimalCreated("import")
	if err := m.Push(context.Background(), gw.URL, "migrate"); err == nil {
		t.Fatalf("expected error when the gateway rejects the push")
	}
}

func TestPush_NoURLOrNilIsNoop(t *testing.T) {
	if err := New().Push(context.Background(), "", "migrate"); err != nil {
		t.Fatalf("expected no-op without url, got %v", err)
	}
	var m *Metrics
	if err := m.Push(context.Background(), "http://unused", "migrate"); err != nil {
		t.Fatalf("expected no-op on nil metrics, got %v", err)
	}
}
