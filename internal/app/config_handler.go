package app

import (
	"encoding/json"
	"net/http"
)

type configRequest struct {
	PreviewIntervalMs *int  `json:"previewIntervalMs,omitempty"`
	PreviewQuality    *int  `json:"previewQuality,omitempty"`
	PreviewEnabled    *bool `json:"previewEnabled,omitempty"`
	InputEnabled      *bool `json:"inputEnabled,omitempty"`
	Reset             bool  `json:"reset,omitempty"`
	RestartPeer       bool  `json:"restartPeer,omitempty"`
}

type configResponse struct {
	Applied           bool `json:"applied"`
	PreviewIntervalMs int  `json:"previewIntervalMs"`
	PreviewQuality    int  `json:"previewQuality"`
	PreviewEnabled    bool `json:"previewEnabled"`
	InputEnabled      bool `json:"inputEnabled"`
}

// handleConfig reads or updates runtime preview and input settings.
func (a *App) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, a.configSnapshot(false))
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	interval, quality := a.previewSettings()
	if req.Reset {
		interval, quality = a.defaults.intervalMs, a.defaults.quality
	}
	if req.PreviewIntervalMs != nil {
		interval = *req.PreviewIntervalMs
	}
	if req.PreviewQuality != nil {
		quality = *req.PreviewQuality
	}
	if interval <= 0 || interval > 5000 {
		http.Error(w, "previewIntervalMs must be 1-5000", http.StatusBadRequest)
		return
	}
	if quality < 1 || quality > 100 {
		http.Error(w, "previewQuality must be 1-100", http.StatusBadRequest)
		return
	}

	a.applyPreviewSettings(interval, quality)
	if req.PreviewEnabled != nil {
		a.session.SetPreviewEnabled(*req.PreviewEnabled)
		if *req.PreviewEnabled {
			a.flushPreviews()
		}
	}
	if req.InputEnabled != nil {
		a.session.SetInputEnabled(*req.InputEnabled)
	}
	if req.RestartPeer {
		a.RestartPeer()
	}
	writeJSON(w, a.configSnapshot(true))
}

// configSnapshot reports the runtime settings.
func (a *App) configSnapshot(applied bool) configResponse {
	interval, quality := a.previewSettings()
	return configResponse{
		Applied:           applied,
		PreviewIntervalMs: interval,
		PreviewQuality:    quality,
		PreviewEnabled:    a.session.PreviewEnabled(),
		InputEnabled:      a.session.InputEnabled(),
	}
}
