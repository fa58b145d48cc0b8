// Package server exposes projected dumps over HTTP for external viewers.
// Dumps are decoded again on every request because the producer rewrites
// them between runs.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/patricklbell/raytracer/export"
	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/loader"
	"github.com/patricklbell/raytracer/log"
)

var logger = log.New("server")

// Options configure the served dumps. An empty path disables its endpoint.
type Options struct {
	RaysPath string
	BVHPath  string
	Config   loader.Config
}

type handler struct {
	opts Options
}

// New returns a handler serving:
//
//	GET /rays                       ray dump document
//	GET /bvh?mode=flat|grouping     BVH dump document
//	GET /metrics                    loader metrics
//	GET /healthz                    liveness probe
func New(opts Options) http.Handler {
	h := &handler{opts: opts}

	var mux http.ServeMux
	mux.HandleFunc("/rays", h.handleRays)
	mux.HandleFunc("/bvh", h.handleBVH)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", handleHealthCheck)
	return &mux
}

func (h *handler) handleRays(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if h.opts.RaysPath == "" {
		http.Error(w, "no ray dump configured", http.StatusNotFound)
		return
	}

	res, err := loader.LoadRays(h.opts.RaysPath, h.opts.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDocument(w, export.NewRayDocument(res))
}

func (h *handler) handleBVH(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if h.opts.BVHPath == "" {
		http.Error(w, "no BVH dump configured", http.StatusNotFound)
		return
	}

	cfg := h.opts.Config
	if mode := r.URL.Query().Get("mode"); mode != "" {
		var err error
		if cfg.Mode, err = geometry.ParseMode(mode); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	res, err := loader.LoadBVH(h.opts.BVHPath, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDocument(w, export.NewBVHDocument(res))
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// The document is encoded before any header is written so encoding
// failures still get a proper status.
func writeDocument(w http.ResponseWriter, doc *export.Document) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, doc, false); err != nil {
		logger.Errorf("[%s] could not encode document: %s", doc.ID, err)
		http.Error(w, "could not encode document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// writeError maps load failures to status codes. An empty dump is not a
// failure: the viewer just has nothing to draw.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loader.ErrEmptyInput):
		logger.Notice(err.Error())
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, os.ErrNotExist):
		logger.Warning(err.Error())
		http.Error(w, err.Error(), http.StatusNotFound)
	case loader.IsCorrupt(err):
		logger.Warning(err.Error())
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logger.Error(err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListenAndServe serves handler on addr until ctx is canceled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Noticef("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
