package rtc

import (
	"testing"

	"github.com/pion/webrtc/v3"
)

// TestNewFactory_RequiresHandler verifies the handler is mandatory.
func TestNewFactory_RequiresHandler(t *testing.T) {
	if _, err := NewFactory(nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
}

// TestNewPeer_ReplacesPrevious verifies a second peer closes the first.
func TestNewPeer_ReplacesPrevious(t *testing.T) {
	f, err := NewFactory(func(*webrtc.DataChannel) {})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	first, err := f.NewPeer()
	if err != nil {
		t.Fatalf("first peer: %v", err)
	}
	second, err := f.NewPeer()
	if err != nil {
		t.Fatalf("second peer: %v", err)
	}
	defer f.ClosePeer()

	if first.SignalingState() != webrtc.SignalingStateClosed {
		t.Fatalf("expected first peer closed, got %s", first.SignalingState())
	}
	if second.SignalingState() == webrtc.SignalingStateClosed {
		t.Fatalf("expected second peer open")
	}
}

// TestClosePeer verifies ClosePeer clears the active peer.
func TestClosePeer(t *testing.T) {
	f, err := NewFactory(func(*webrtc.DataChannel) {})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	if _, err := f.NewPeer(); err != nil {
		t.Fatalf("new peer: %v", err)
	}
	if !f.Active() {
		t.Fatalf("expected active peer")
	}
	f.ClosePeer()
	if f.Active() {
		t.Fatalf("expected no active peer")
	}
}

// TestSetDebugLogging verifies the debug switch.
func TestSetDebugLogging(t *testing.T) {
	SetDebugLogging(true)
	defer SetDebugLogging(false)
	if !debugEnabled() {
		t.Fatalf("expected debug enabled")
	}
}
