package render

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/frudas24/sketchslice/internal/sketch"
)

// recordingPublisher keeps every published frame. With throttled set it
// only wants final frames.
type recordingPublisher struct {
	mu        sync.Mutex
	frames    [][]byte
	throttled bool
}

// Wants refuses non-final frames while throttled.
func (p *recordingPublisher) Wants(final bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return final || !p.throttled
}

// Publish records a frame.
func (p *recordingPublisher) Publish(jpg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, jpg)
}

// count returns the number of frames published.
func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// fakeEncode returns a one-byte frame without real encoding.
func fakeEncode(image.Image, int) ([]byte, error) {
	return []byte{1}, nil
}

// isInk reports whether the pixel at (x,y) was painted.
func isInk(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R < 128 && c.G < 128 && c.B < 128
}

// TestCanvas_StrokesSegment verifies pixels along a segment are painted.
func TestCanvas_StrokesSegment(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewCanvas(100, 50, 4, 70, fakeEncode, pub)
	c.SegmentCommitted(sketch.Seg(10, 25, 90, 25))

	img := c.Snapshot()
	if !isInk(img, 50, 25) || !isInk(img, 11, 25) {
		t.Fatalf("expected ink along the segment")
	}
	if isInk(img, 50, 5) || isInk(img, 95, 45) {
		t.Fatalf("expected paper away from the segment")
	}
	if pub.count() != 1 {
		t.Fatalf("expected one frame, got %d", pub.count())
	}
}

// TestCanvas_ZeroLengthSegmentLeavesDot verifies a zero-length segment still paints.
func TestCanvas_ZeroLengthSegmentLeavesDot(t *testing.T) {
	c := NewCanvas(20, 20, 4, 70, nil, nil)
	c.SegmentCommitted(sketch.Seg(10, 10, 10, 10))
	if !isInk(c.Snapshot(), 10, 10) {
		t.Fatalf("expected a dot at the point")
	}
}

// TestCanvas_OffSurfaceSegmentsAreClipped verifies segments leaving the canvas do not panic.
func TestCanvas_OffSurfaceSegmentsAreClipped(t *testing.T) {
	c := NewCanvas(20, 20, 2, 70, nil, nil)
	c.SegmentCommitted(sketch.Seg(10, 10, 700, 70))
	c.SegmentCommitted(sketch.Seg(-50, -50, -10, -10))
	if !isInk(c.Snapshot(), 12, 10) {
		t.Fatalf("expected the on-canvas part to be painted")
	}
}

// TestCanvas_ResizeRedraws verifies resizing replays the given lines.
func TestCanvas_ResizeRedraws(t *testing.T) {
	c := NewCanvas(10, 10, 2, 70, nil, nil)
	c.Resize(200, 100, []sketch.Segment{sketch.Seg(150, 50, 190, 50)})

	img := c.Snapshot()
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if !isInk(img, 170, 50) {
		t.Fatalf("expected replayed line")
	}
}

// TestCanvas_Clear verifies Clear blanks the image.
func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(20, 20, 4, 70, nil, nil)
	c.SegmentCommitted(sketch.Seg(0, 10, 20, 10))
	c.Clear()
	if isInk(c.Snapshot(), 10, 10) {
		t.Fatalf("expected blank canvas after clear")
	}
	if got := c.Snapshot().RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white paper, got %v", got)
	}
}

// TestCanvas_EncodeErrorSkipsPublish verifies encoder failures do not publish.
func TestCanvas_EncodeErrorSkipsPublish(t *testing.T) {
	pub := &recordingPublisher{}
	failing := func(image.Image, int) ([]byte, error) { return nil, errors.New("boom") }
	c := NewCanvas(10, 10, 2, 70, failing, pub)
	c.SegmentCommitted(sketch.Seg(0, 0, 5, 5))
	if pub.count() != 0 {
		t.Fatalf("expected no frames, got %d", pub.count())
	}
}

// TestCanvas_ThrottledSegmentsAreNotEncoded verifies skipped frames cost no
// encode and the last picture goes out on Flush.
func TestCanvas_ThrottledSegmentsAreNotEncoded(t *testing.T) {
	pub := &recordingPublisher{throttled: true}
	encodes := 0
	counting := func(image.Image, int) ([]byte, error) {
		encodes++
		return []byte{1}, nil
	}
	c := NewCanvas(100, 50, 2, 70, counting, pub)
	c.SegmentCommitted(sketch.Seg(10, 10, 20, 10))
	c.SegmentCommitted(sketch.Seg(20, 10, 30, 10))
	c.SegmentCommitted(sketch.Seg(30, 10, 40, 10))
	if encodes != 0 || pub.count() != 0 {
		t.Fatalf("expected no encodes while throttled, got %d encodes and %d frames", encodes, pub.count())
	}

	c.Flush()
	if encodes != 1 || pub.count() != 1 {
		t.Fatalf("expected one frame on flush, got %d encodes and %d frames", encodes, pub.count())
	}
	c.Flush()
	if encodes != 1 {
		t.Fatalf("expected flush of a clean canvas to skip encoding, got %d encodes", encodes)
	}
}
