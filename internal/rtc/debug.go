package rtc

import "sync/atomic"

// debugPeers controls whether verbose peer logs are emitted.
var debugPeers atomic.Bool

// SetDebugLogging enables/disables verbose WebRTC debug logs.
func SetDebugLogging(enabled bool) {
	debugPeers.Store(enabled)
}

// debugEnabled reports whether peer debug logs are enabled.
func debugEnabled() bool {
	return debugPeers.Load()
}
