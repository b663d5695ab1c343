// Package mjpeg serves drawing previews as a multipart JPEG stream.
package mjpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"sync"
	"time"
)

const (
	boundary = "frame"
	// repeatEvery is how often idle viewers get the current picture again.
	repeatEvery = time.Second
)

// Stream fans preview frames out to MJPEG viewers. Producers call Ready
// before encoding so frames inside the throttle window are never built.
type Stream struct {
	mu       sync.Mutex
	viewers  map[*viewer]struct{}
	current  []byte
	interval time.Duration
	sentAt   time.Time
	now      func() time.Time
}

// viewer is one connected HTTP client. pending holds at most the newest
// frame it has not written yet.
type viewer struct {
	pending chan []byte
}

// NewStream returns a stream that accepts at most one frame per interval.
func NewStream(interval time.Duration) *Stream {
	return &Stream{
		viewers:  make(map[*viewer]struct{}),
		interval: interval,
		now:      time.Now,
	}
}

// SetMinInterval changes the throttle window.
func (s *Stream) SetMinInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
}

// Ready reports whether the throttle window since the last frame has passed.
func (s *Stream) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval <= 0 || s.now().Sub(s.sentAt) >= s.interval
}

// Publish makes jpg the current picture and hands it to every viewer,
// replacing any frame a slow viewer has not written yet.
func (s *Stream) Publish(jpg []byte) {
	if len(jpg) == 0 {
		return
	}
	frame := bytes.Clone(jpg)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = frame
	s.sentAt = s.now()
	for v := range s.viewers {
		v.offer(frame)
	}
}

// Last returns a copy of the current picture.
func (s *Stream) Last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.current)
}

// Reset forgets the current picture and reopens the throttle window.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.sentAt = time.Time{}
}

// Viewers returns the number of connected clients.
func (s *Stream) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// ServeHTTP streams frames until the client goes away.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")

	v := s.join()
	defer s.leave(v)

	repeat := time.NewTicker(repeatEvery)
	defer repeat.Stop()

	var shown []byte
	for {
		select {
		case <-r.Context().Done():
			return
		case shown = <-v.pending:
		case <-repeat.C:
			if shown = s.Last(); shown == nil {
				continue
			}
		}
		if err := writeFrame(w, shown); err != nil {
			return
		}
		fl.Flush()
	}
}

// EncodeJPEG encodes an image into a JPEG buffer. Out-of-range quality
// falls back to 60.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 60
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// join registers a viewer primed with the current picture.
func (s *Stream) join() *viewer {
	v := &viewer{pending: make(chan []byte, 1)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers[v] = struct{}{}
	if s.current != nil {
		v.pending <- s.current
	}
	return v
}

// leave drops a viewer.
func (s *Stream) leave(v *viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.viewers, v)
}

// offer queues frame, discarding an unwritten older one. Callers hold s.mu,
// so offers to one viewer never race each other.
func (v *viewer) offer(frame []byte) {
	select {
	case <-v.pending:
	default:
	}
	v.pending <- frame
}

// writeFrame writes one multipart JPEG part.
func writeFrame(w http.ResponseWriter, jpg []byte) error {
	if _, err := fmt.Fprintf(w, "\r\n--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", boundary, len(jpg)); err != nil {
		return err
	}
	_, err := w.Write(jpg)
	return err
}
