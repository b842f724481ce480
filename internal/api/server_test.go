package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/campuskit/catview/internal/catalog"
	"github.com/campuskit/catview/internal/config"
	"github.com/campuskit/catview/internal/render"
)

func testServer(cfg config.Config) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := catalog.NewFetcher(5*time.Second, 1<<20, "catview-test")
	return NewServer(render.New(fetcher, nil, log), log, cfg)
}

func xmlBackend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<catalog><text><![CDATA[<p>About.</p>]]></text></catalog>`))
	}))
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestHandleCatalog(t *testing.T) {
	backend := xmlBackend()
	defer backend.Close()

	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?url="+backend.URL, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "course-catalog") || !strings.Contains(body, ">Overview</h2>") {
		t.Errorf("unexpected fragment: %q", body)
	}
}

func TestHandleCatalog_MissingURLStill200(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("pipeline errors must still render, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "course-catalog-error") {
		t.Errorf("expected inline error fragment: %q", rec.Body.String())
	}
}

func TestHandleCatalogMarkdown(t *testing.T) {
	backend := xmlBackend()
	defer backend.Close()

	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/markdown?url="+backend.URL, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("expected markdown content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Overview") {
		t.Errorf("unexpected markdown: %q", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	srv := testServer(config.Config{APIKey: "secret"})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?url=http://x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog?url=", nil)
	req.Header.Set("Authorization", "Bearer secret")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}

	// Health stays public.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health must be public, got %d", rec.Code)
	}
}

func TestHandleScrollScript(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/catview.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "scrollToSection") {
		t.Errorf("script must define scrollToSection: %q", rec.Body.String())
	}
}

func TestParseRemoveList(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"  ", nil},
		{"1,3", []int{1, 3}},
		{" 2 , x, 0, -3, 4 ", []int{2, 4}},
		{"abc", nil},
	}
	for _, c := range cases {
		if got := parseRemoveList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("parseRemoveList(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}
