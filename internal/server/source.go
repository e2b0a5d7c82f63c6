package server

import (
	"io"
	"log/slog"
	"sync"

	"github.com/drakeaxelrod/yxa/broadcast"
	"github.com/drakeaxelrod/yxa/hid"
)

// Source is the device side of the bridge: a stream of device-to-host frames
// and a sink for host-to-device frames. Implemented by a real hidraw link
// and by an in-process simulated session.
type Source interface {
	// Frames returns the device-to-host stream. The channel closes when
	// the device link ends.
	Frames() <-chan hid.Frame
	// Forward delivers a host-originated frame to the device.
	Forward(data []byte)
}

// DeviceSource adapts a raw hidraw stream to the Source interface.
type DeviceSource struct {
	rw     io.ReadWriter
	frames chan hid.Frame
	logger *slog.Logger
}

// NewDeviceSource wraps an open hidraw device. Call Run to start pumping.
func NewDeviceSource(rw io.ReadWriter, logger *slog.Logger) *DeviceSource {
	return &DeviceSource{
		rw:     rw,
		frames: make(chan hid.Frame, 32),
		logger: logger,
	}
}

// Run pumps device reports into the frame channel until the device read
// fails (typically unplug), then closes the channel. Blocks; run it in a
// goroutine.
func (d *DeviceSource) Run() {
	defer close(d.frames)
	buf := make([]byte, hid.FrameSize)
	for {
		n, err := d.rw.Read(buf)
		if err != nil {
			d.logger.Info("device stream ended", "error", err)
			return
		}
		if n == 0 {
			continue
		}
		var f hid.Frame
		copy(f[:], buf[:n])
		d.frames <- f
	}
}

func (d *DeviceSource) Frames() <-chan hid.Frame { return d.frames }

// Forward writes a host frame to the device, padded to the full report size.
func (d *DeviceSource) Forward(data []byte) {
	var f hid.Frame
	copy(f[:], data)
	if _, err := d.rw.Write(f.Bytes()); err != nil {
		d.logger.Warn("forward to device failed", "error", err)
	}
}

// SessionSource runs a broadcast.Session in-process and exposes it as a
// Source. The session itself is single-threaded; the mutex serializes the
// bridge's receive path with the simulator's tick and key-event calls.
type SessionSource struct {
	mu        sync.Mutex
	sess      *broadcast.Session
	frames    chan hid.Frame
	closeOnce sync.Once
}

// NewSessionSource builds a session wired to an internal frame channel.
func NewSessionSource(cfg broadcast.Config, state broadcast.StateSource) *SessionSource {
	s := &SessionSource{frames: make(chan hid.Frame, 64)}
	s.sess = broadcast.New(cfg, state, s)
	return s
}

// Send implements broadcast.Transport. Frames are dropped when nobody
// drains; the link is best-effort by contract.
func (s *SessionSource) Send(f hid.Frame) {
	select {
	case s.frames <- f:
	default:
	}
}

func (s *SessionSource) Frames() <-chan hid.Frame { return s.frames }

// Forward runs the session's receive callback.
func (s *SessionSource) Forward(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.HandleHostFrame(data)
}

// Tick runs one scheduler tick.
func (s *SessionSource) Tick(now uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Tick(now)
}

// SubmitKeyEvent feeds a key event through the session's primary hook.
func (s *SessionSource) SubmitKeyEvent(kind hid.EventKind, row, col uint8, now uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.SubmitKeyEvent(kind, row, col, now)
}

// Do runs fn under the session lock. The simulator uses it to mutate the
// keyboard state the session samples, so ticks never observe half-applied
// state.
func (s *SessionSource) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Close ends the frame stream.
func (s *SessionSource) Close() {
	s.closeOnce.Do(func() { close(s.frames) })
}
