// Package preview serves a collage over HTTP and rebuilds it when inputs change.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"k8s.io/klog/v2"

	"github.com/tstromberg/collage/pkg/collage"
)

// BuildFunc produces a fresh collage.
type BuildFunc func(ctx context.Context) (*collage.Canvas, error)

// Server holds the most recent successful build.
type Server struct {
	build BuildFunc

	mu      sync.RWMutex
	png     []byte
	layout  collage.Layout
	built   time.Time
	lastErr error
	builds  int
}

// New creates a new server.
func New(build BuildFunc) *Server {
	return &Server{build: build}
}

// Rebuild runs the build and, on success, replaces the served image.
// A failed rebuild keeps the previous image.
func (s *Server) Rebuild(ctx context.Context) error {
	err := s.rebuild(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
	return err
}

func (s *Server) rebuild(ctx context.Context) error {
	c, err := s.build(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, c.Image()); err != nil {
		return fmt.Errorf("%w: png: %w", collage.ErrEncode, err)
	}

	s.mu.Lock()
	s.png = buf.Bytes()
	s.layout = c.Layout()
	s.built = time.Now()
	s.lastErr = nil
	s.builds++
	s.mu.Unlock()

	klog.Infof("preview updated: %s", c.Layout())
	return nil
}

// Builds returns how many rebuilds have succeeded.
func (s *Server) Builds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builds
}

// Handler returns the HTTP routes for the preview.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.IndexHandler())
	r.Get("/collage.png", s.ImageHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		klog.V(1).Infof("%s %s [%s] %s", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), time.Since(start))
	})
}

// ImageHandler serves the latest collage as PNG.
func (s *Server) ImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.RLock()
		png, built, lastErr := s.png, s.built, s.lastErr
		s.mu.RUnlock()

		if png == nil {
			msg := "no collage built yet"
			if lastErr != nil {
				msg = lastErr.Error()
			}
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Last-Modified", built.UTC().Format(http.TimeFormat))
		w.Write(png)
	}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><title>collage</title>
<style>body{background:#333;color:#eee;font-family:sans-serif;margin:1em}img{max-width:100%;height:auto}</style>
</head><body>
{{ if .Err }}<p>last build failed: {{ .Err }}</p>{{ end }}
{{ if .Ready }}<p>{{ .Layout }} &middot; built {{ .Built.Format "15:04:05" }}</p>
<img src="collage.png?b={{ .Builds }}" alt="collage">{{ else }}<p>no collage built yet</p>{{ end }}
</body></html>
`))

// IndexHandler serves a page showing the collage and the last build error.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.RLock()
		data := struct {
			Ready  bool
			Layout string
			Built  time.Time
			Builds int
			Err    error
		}{
			Ready:  s.png != nil,
			Layout: s.layout.String(),
			Built:  s.built,
			Builds: s.builds,
			Err:    s.lastErr,
		}
		s.mu.RUnlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, data); err != nil {
			klog.Errorf("render index: %v", err)
		}
	}
}
