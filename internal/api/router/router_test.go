package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	uploadDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(uploadDir, "123-photo.jpg"), []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html>landing</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	return New(&Config{
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		UploadDir:      uploadDir,
		WebDir:         webDir,
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthRoute(t *testing.T) {
	w := get(t, testRouter(t), "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	w := get(t, testRouter(t), "/metrics")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestUploadsServedStatically(t *testing.T) {
	w := get(t, testRouter(t), "/uploads/123-photo.jpg")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "jpeg bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestUploadsUnknownFile(t *testing.T) {
	w := get(t, testRouter(t), "/uploads/nope.jpg")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLandingPageServed(t *testing.T) {
	w := get(t, testRouter(t), "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "landing") {
		t.Errorf("body = %q", w.Body.String())
	}
}
