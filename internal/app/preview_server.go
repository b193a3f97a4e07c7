package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/specialistvlad/scenepack/internal/ctxlog"
)

// healthHandler answers liveness probes of the preview server.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// bundleHandler serves the files of dir. The root serves index.html.
func (a *App) bundleHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}
		file := path.Join(dir, name)
		info, err := a.fs.Stat(file)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		f, err := a.fs.Open(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}

// previewHandler routes the preview server.
func (a *App) previewHandler(dir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", a.metrics.Handler())
	mux.Handle("/", a.bundleHandler(dir))
	return mux
}

// servePreview serves dir until ctx is done.
func (a *App) servePreview(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	addr := fmt.Sprintf(":%d", a.config.ServePort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.previewHandler(dir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🎮 Preview server starting", "address", fmt.Sprintf("http://localhost%s/", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("preview server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return a.closePreviewServer()
}

func (a *App) closePreviewServer() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Closing preview server...")

	if a.httpServer == nil {
		logger.Debug("Preview server was not running.")
		return nil
	}

	// The run context is already done; shutdown gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("Shutting down preview server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Preview server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Preview server shut down gracefully.")
	return nil
}
