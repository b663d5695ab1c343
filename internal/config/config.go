// Package config loads environment configuration for SketchSlice.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr        = "0.0.0.0:8790"
	defaultDataDir           = "./data"
	defaultPreviewEnabled    = true
	defaultPreviewIntervalMs = 120
	defaultPreviewQuality    = 70
	defaultStrokeWidth       = 2
	defaultWebRTCEnabled     = true
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string
	UIPassword        string
	DataDir           string
	LayoutPath        string
	PreviewEnabled    bool
	PreviewIntervalMs int
	PreviewQuality    int
	StrokeWidth       float64
	WebRTCEnabled     bool
	LogLevel          string
	LogFormat         string
	LogFile           string
}

// Load reads configuration from <dataDir>/.env and environment variables.
// An empty dataDir falls back to DATA_DIR and then ./data.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = envString("DATA_DIR", defaultDataDir)
	}
	cfg := Config{
		ListenAddr:        defaultListenAddr,
		DataDir:           dataDir,
		PreviewEnabled:    defaultPreviewEnabled,
		PreviewIntervalMs: defaultPreviewIntervalMs,
		PreviewQuality:    defaultPreviewQuality,
		StrokeWidth:       defaultStrokeWidth,
		WebRTCEnabled:     defaultWebRTCEnabled,
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.LayoutPath = envString("LAYOUT_PATH", filepath.Join(cfg.DataDir, "layout.yaml"))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.PreviewEnabled = envBool("PREVIEW_ENABLED", cfg.PreviewEnabled)
	cfg.WebRTCEnabled = envBool("WEBRTC_ENABLED", cfg.WebRTCEnabled)
	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(envString("LOG_FORMAT", cfg.LogFormat))
	cfg.LogFile = envString("LOG_FILE", "")

	interval, err := envInt("PREVIEW_INTERVAL_MS", cfg.PreviewIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if interval <= 0 {
		return Config{}, fmt.Errorf("PREVIEW_INTERVAL_MS must be > 0")
	}
	cfg.PreviewIntervalMs = interval

	quality, err := envInt("PREVIEW_QUALITY", cfg.PreviewQuality)
	if err != nil {
		return Config{}, err
	}
	if quality <= 0 || quality > 100 {
		return Config{}, fmt.Errorf("PREVIEW_QUALITY must be 1-100")
	}
	cfg.PreviewQuality = quality

	width, err := envFloat("STROKE_WIDTH", cfg.StrokeWidth)
	if err != nil {
		return Config{}, err
	}
	if width <= 0 {
		return Config{}, fmt.Errorf("STROKE_WIDTH must be > 0")
	}
	cfg.StrokeWidth = width

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json")
	}

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
