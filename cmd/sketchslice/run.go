package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/sketchslice/internal/app"
	"github.com/frudas24/sketchslice/internal/config"
	"github.com/frudas24/sketchslice/internal/layout"
	"github.com/frudas24/sketchslice/internal/logging"
	"github.com/frudas24/sketchslice/internal/rtc"
	"github.com/frudas24/sketchslice/internal/session"
)

// options are the command line switches.
type options struct {
	debug   bool
	dataDir string
}

// run wires the application and blocks until shutdown.
func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return err
	}
	closeLog, err := logging.Init(logging.Options{
		App:    "sketchslice",
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Debug:  opts.debug,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	rtc.SetDebugLogging(opts.debug)
	logStartup(cfg)

	layouts, err := layout.Open(cfg.LayoutPath)
	if err != nil {
		return err
	}

	sess := session.New(cfg.UIPassword)
	appInstance, err := app.New(cfg, sess, layouts)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("shutdown: signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup reports configuration checks and connection info.
func logStartup(cfg config.Config) {
	slog.Info("SketchSlice starting", "version", version)
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		slog.Info("env check: ok", "path", envPath)
	} else {
		slog.Info("env check: missing", "path", envPath)
	}
	slog.Info("layout store", "path", cfg.LayoutPath)
	slog.Info("preview", "enabled", cfg.PreviewEnabled, "interval_ms", cfg.PreviewIntervalMs, "quality", cfg.PreviewQuality)
	slog.Info("webrtc", "enabled", cfg.WebRTCEnabled)
	logListenStatus(cfg.ListenAddr)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	slog.Info("listen addr", "addr", addr)
	if url, ok := localURL(addr); ok {
		slog.Info("local url", "url", url)
	}
}

// localURL turns a listen address into a browsable URL.
func localURL(addr string) (string, bool) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", false
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port), true
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
