// Package rtc builds WebRTC peers that carry drawing input over data channels.
package rtc

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// ChannelHandler is invoked for every data channel a remote peer opens.
type ChannelHandler func(dc *webrtc.DataChannel)

// Factory owns the WebRTC API and the single active peer connection.
type Factory struct {
	mu        sync.Mutex
	api       *webrtc.API
	config    webrtc.Configuration
	peer      *webrtc.PeerConnection
	onChannel ChannelHandler
}

// NewFactory initializes the WebRTC API with default codecs and interceptors.
func NewFactory(onChannel ChannelHandler) (*Factory, error) {
	if onChannel == nil {
		return nil, errors.New("channel handler is required")
	}
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)
	return &Factory{api: api, onChannel: onChannel}, nil
}

// SetICEServers replaces the ICE servers used for future peers.
func (f *Factory) SetICEServers(urls ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(urls) == 0 {
		f.config.ICEServers = nil
		return
	}
	f.config.ICEServers = []webrtc.ICEServer{{URLs: urls}}
}

// NewPeer creates a peer connection, closing the previous one.
func (f *Factory) NewPeer() (*webrtc.PeerConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.peer != nil {
		_ = f.peer.Close()
		f.peer = nil
	}

	peer, err := f.api.NewPeerConnection(f.config)
	if err != nil {
		return nil, fmt.Errorf("new peer connection: %w", err)
	}
	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if debugEnabled() {
			slog.Debug("rtc: data channel", "label", dc.Label())
		}
		f.onChannel(dc)
	})
	peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		if debugEnabled() {
			slog.Debug("rtc: peer state", "state", state.String())
		}
	})

	f.peer = peer
	return peer, nil
}

// ClosePeer closes the current peer connection.
func (f *Factory) ClosePeer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.peer != nil {
		_ = f.peer.Close()
		f.peer = nil
	}
}

// Active reports whether a peer connection is open.
func (f *Factory) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peer != nil
}
