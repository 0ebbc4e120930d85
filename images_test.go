package devlogs

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newImageTestApp(t *testing.T, cdn http.HandlerFunc) *App {
	t.Helper()
	srv := httptest.NewServer(cdn)
	t.Cleanup(srv.Close)

	a := New(SiteConfig{
		ProjectID:        "p1",
		Dataset:          "production",
		SessionSecret:    "test-secret",
		PageStorePath:    t.TempDir() + "/pages.db",
		AssetBaseURL:     srv.URL,
		RevalidateWindow: time.Minute,
	}, stubViews(&viewRecord{}), WithContentSource(newFakeSource()))
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestImageProxyServesJPEG(t *testing.T) {
	a := newImageTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/p1/production/abc-4x4.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(pngBytes(t, 4, 4))
	})

	w := doRequest(a, httptest.NewRequest(http.MethodGet, "/image/image-abc-4x4-png", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	if _, err := jpeg.Decode(w.Body); err != nil {
		t.Errorf("body did not decode as JPEG: %v", err)
	}
}

func TestImageProxyDownscalesWideImages(t *testing.T) {
	a := newImageTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 1600, 10))
	})

	w := doRequest(a, httptest.NewRequest(http.MethodGet, "/image/image-wide-1600x10-png", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	img, err := jpeg.Decode(w.Body)
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if got := img.Bounds().Dx(); got != maxImageWidth {
		t.Errorf("width = %d, want %d", got, maxImageWidth)
	}
}

func TestImageProxyMalformedRef(t *testing.T) {
	a := newImageTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be contacted for a malformed reference")
	})

	w := doRequest(a, httptest.NewRequest(http.MethodGet, "/image/not-a-ref", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestImageProxyUpstreamFailure(t *testing.T) {
	a := newImageTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})

	w := doRequest(a, httptest.NewRequest(http.MethodGet, "/image/image-abc-4x4-png", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want graceful 404", w.Code)
	}
}

func TestImageProxyUndecodableData(t *testing.T) {
	a := newImageTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an image"))
	})

	w := doRequest(a, httptest.NewRequest(http.MethodGet, "/image/image-abc-4x4-png", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want graceful 404", w.Code)
	}
}
