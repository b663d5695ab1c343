package app

import (
	"time"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/mjpeg"
	"github.com/frudas24/sketchslice/internal/render"
	"github.com/frudas24/sketchslice/internal/sketch"
)

// previewDefaults keeps the startup preview settings for resets.
type previewDefaults struct {
	intervalMs int
	quality    int
}

// preview is the raster canvas and MJPEG stream of one surface.
type preview struct {
	stream *mjpeg.Stream
	canvas *render.Canvas
}

// gatedStream drops frames while previews are switched off and asks the
// stream before each encode so throttled frames are never built.
type gatedStream struct {
	stream  *mjpeg.Stream
	enabled func() bool
}

// Wants reports whether a frame would reach viewers now.
func (g gatedStream) Wants(final bool) bool {
	return g.enabled() && (final || g.stream.Ready())
}

// Publish forwards the frame when previews are enabled.
func (g gatedStream) Publish(jpg []byte) {
	if g.enabled() {
		g.stream.Publish(jpg)
	}
}

// newPreviewLocked allocates a preview sized to l; a.mu must be held.
func (a *App) newPreviewLocked(l geom.Layout) *preview {
	stream := mjpeg.NewStream(time.Duration(a.cfg.PreviewIntervalMs) * time.Millisecond)
	w, h := canvasSize(l)
	canvas := render.NewCanvas(w, h, a.cfg.StrokeWidth, a.cfg.PreviewQuality, mjpeg.EncodeJPEG,
		gatedStream{stream: stream, enabled: a.session.PreviewEnabled})
	return &preview{stream: stream, canvas: canvas}
}

// bind makes the preview follow the board. Frames skipped by the throttle
// during a drag are flushed when the drag ends.
func (p *preview) bind(b *board.Board) {
	b.AddSink(p.canvas)
	b.OnLayout(func(l geom.Layout, lines []sketch.Segment) {
		w, h := canvasSize(l)
		p.canvas.Resize(w, h, lines)
	})
	b.OnDragEnd(p.canvas.Flush)
	b.OnReset(func() {
		p.stream.Reset()
		p.canvas.Clear()
	})
}

// canvasSize returns the pixel size of the surface.
func canvasSize(l geom.Layout) (int, int) {
	b := l.Bounds()
	return int(b.W + 0.5), int(b.H + 0.5)
}

// Preview returns the MJPEG stream for a surface.
func (a *App) Preview(id string) (*mjpeg.Stream, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.previews[id]
	if !ok {
		return nil, false
	}
	return p.stream, true
}

// applyPreviewSettings pushes interval and quality to every preview.
func (a *App) applyPreviewSettings(intervalMs, quality int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg.PreviewIntervalMs = intervalMs
	a.cfg.PreviewQuality = quality
	for _, p := range a.previews {
		p.stream.SetMinInterval(time.Duration(intervalMs) * time.Millisecond)
		p.canvas.SetQuality(quality)
	}
}

// previewSettings returns the current interval and quality.
func (a *App) previewSettings() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.PreviewIntervalMs, a.cfg.PreviewQuality
}

// flushPreviews publishes every canvas that changed while frames were off.
func (a *App) flushPreviews() {
	a.mu.Lock()
	canvases := make([]*render.Canvas, 0, len(a.previews))
	for _, p := range a.previews {
		canvases = append(canvases, p.canvas)
	}
	a.mu.Unlock()
	for _, c := range canvases {
		c.Flush()
	}
}
