// Package render rasterises committed segments into preview frames.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"sync"

	"github.com/frudas24/sketchslice/internal/sketch"
	"golang.org/x/image/vector"
)

// Publisher receives encoded frames.
type Publisher interface {
	// Wants reports whether a frame published now would be shown. Final
	// frames close a burst of drawing and are not subject to throttling.
	Wants(final bool) bool
	Publish(jpg []byte)
}

// Encoder turns the canvas into bytes for the publisher.
type Encoder func(img image.Image, quality int) ([]byte, error)

var (
	paper = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ink   = color.RGBA{A: 255}
)

// Canvas is a sketch.Sink that strokes every segment onto an RGBA image and
// publishes the result.
type Canvas struct {
	mu      sync.Mutex
	img     *image.RGBA
	raster  *vector.Rasterizer
	width   float64
	quality int
	encode  Encoder
	out     Publisher
	// stale is set when the image changed but no frame was published.
	stale bool
}

// Ensure Canvas implements the sink interface.
var _ sketch.Sink = (*Canvas)(nil)

// NewCanvas returns a blank w x h canvas. out and encode may be nil, in
// which case nothing is published.
func NewCanvas(w, h int, strokeWidth float64, quality int, encode Encoder, out Publisher) *Canvas {
	if strokeWidth <= 0 {
		strokeWidth = 1
	}
	c := &Canvas{
		width:   strokeWidth,
		quality: quality,
		encode:  encode,
		out:     out,
	}
	c.reset(w, h)
	return c
}

// SegmentCommitted strokes s and publishes a new frame unless the
// publisher is throttling.
func (c *Canvas) SegmentCommitted(s sketch.Segment) {
	c.mu.Lock()
	c.stroke(s)
	frame := c.frameLocked(false)
	c.mu.Unlock()
	c.publish(frame)
}

// Flush publishes the image if frames were skipped since the last one.
func (c *Canvas) Flush() {
	c.mu.Lock()
	var frame []byte
	if c.stale {
		frame = c.frameLocked(true)
	}
	c.mu.Unlock()
	c.publish(frame)
}

// Resize reallocates the canvas and redraws lines onto it.
func (c *Canvas) Resize(w, h int, lines []sketch.Segment) {
	c.mu.Lock()
	c.reset(w, h)
	for _, s := range lines {
		c.stroke(s)
	}
	frame := c.frameLocked(true)
	c.mu.Unlock()
	c.publish(frame)
}

// Clear blanks the canvas.
func (c *Canvas) Clear() {
	c.mu.Lock()
	b := c.img.Bounds()
	c.reset(b.Dx(), b.Dy())
	frame := c.frameLocked(true)
	c.mu.Unlock()
	c.publish(frame)
}

// SetQuality changes the JPEG quality of future frames.
func (c *Canvas) SetQuality(quality int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quality = quality
}

// Snapshot returns a copy of the current image.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// reset allocates a blank image of at least 1x1.
func (c *Canvas) reset(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	c.raster = vector.NewRasterizer(w, h)
	c.raster.DrawOp = draw.Over
}

// stroke fills the rectangle covering s at the configured width, with
// square caps so consecutive segments join without gaps.
func (c *Canvas) stroke(s sketch.Segment) {
	half := c.width / 2
	dx, dy := s.End.X-s.Start.X, s.End.Y-s.Start.Y
	length := math.Hypot(dx, dy)
	// Direction and normal, both scaled to half the stroke width.
	ux, uy := half, 0.0
	if length > 0 {
		ux, uy = dx/length*half, dy/length*half
	}
	nx, ny := -uy, ux

	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Over
	c.raster.MoveTo(float32(s.Start.X-ux+nx), float32(s.Start.Y-uy+ny))
	c.raster.LineTo(float32(s.End.X+ux+nx), float32(s.End.Y+uy+ny))
	c.raster.LineTo(float32(s.End.X+ux-nx), float32(s.End.Y+uy-ny))
	c.raster.LineTo(float32(s.Start.X-ux-nx), float32(s.Start.Y-uy-ny))
	c.raster.ClosePath()
	c.raster.Draw(c.img, b, image.NewUniform(ink), image.Point{})
}

// frameLocked encodes the image when the publisher wants it and records a
// skipped frame otherwise; mu must be held.
func (c *Canvas) frameLocked(final bool) []byte {
	if c.encode == nil || c.out == nil {
		return nil
	}
	if !c.out.Wants(final) {
		c.stale = true
		return nil
	}
	c.stale = false
	jpg, err := c.encode(c.img, c.quality)
	if err != nil {
		slog.Warn("render: encode frame", "err", err)
		return nil
	}
	return jpg
}

// publish hands a frame to the publisher outside the lock.
func (c *Canvas) publish(frame []byte) {
	if len(frame) > 0 {
		c.out.Publish(frame)
	}
}
