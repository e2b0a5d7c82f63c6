// Package broadcast implements the keyboard's event-broadcast engine: it
// samples layer/modifier/Caps-Word state once per scheduler tick, coalesces
// key events from the matrix pipeline into batch frames, and answers
// host-initiated state requests.
//
// Everything here runs in a single cooperative context (tick, key-event
// hooks, receive callback) and never blocks; the Session has no internal
// locking by design. Callers that drive it from multiple goroutines must
// serialize access themselves.
package broadcast

import (
	"math/bits"

	"github.com/drakeaxelrod/yxa/hid"
)

// StateSource is the keyboard runtime surface the observer samples.
type StateSource interface {
	// LayerState returns the momentary (held) layer bitmask.
	LayerState() uint32
	// DefaultLayerState returns the persistent default layer bitmask.
	DefaultLayerState() uint32
	// ModifierMask returns held and one-shot modifiers ORed together.
	ModifierMask() uint8
	// CapsWordActive reports whether Caps Word is on.
	CapsWordActive() bool
}

// Transport delivers one frame to the host. Sends are fire-and-forget: the
// link is best-effort and unacknowledged, and a host that missed frames
// recovers by requesting a fresh full-state snapshot.
type Transport interface {
	Send(hid.Frame)
}

// Config tunes the session's bounded buffers.
type Config struct {
	TrackerCapacity int    `help:"Max simultaneously tracked held keys" default:"10"`
	BatchCapacity   int    `help:"Key events coalesced per batch frame" default:"8"`
	BatchTimeoutMs  uint32 `help:"Idle milliseconds before a partial batch is flushed" default:"2"`
}

// withDefaults fills zero fields with the firmware defaults.
func (c Config) withDefaults() Config {
	if c.TrackerCapacity <= 0 {
		c.TrackerCapacity = 10
	}
	if c.BatchCapacity <= 0 {
		c.BatchCapacity = 8
	}
	if c.BatchCapacity > hid.MaxBatchEvents {
		c.BatchCapacity = hid.MaxBatchEvents
	}
	if c.BatchTimeoutMs == 0 {
		c.BatchTimeoutMs = 2
	}
	return c
}

// EffectiveLayer computes the layer to report: the highest set bit of the
// momentary bitmask ORed with the default bitmask. The OR matters: a held
// layer overrides the default, but with nothing held the default layer is
// still reported instead of zero.
func EffectiveLayer(momentary, def uint32) uint8 {
	combined := momentary | def
	if combined == 0 {
		return 0
	}
	return uint8(bits.Len32(combined) - 1)
}

// Session owns the broadcast state: last-broadcast values for the observer,
// the tracked key set, and the pending event batch. One Session lives from
// device init to power-off.
type Session struct {
	cfg Config
	src StateSource
	tr  Transport

	lastLayer uint8
	lastCaps  bool
	lastMods  uint8

	tracked tracker

	batch      []hid.KeyEvent
	batchStamp uint32

	// broadcastPresses gates the legacy single-key frames (0x02/0x03),
	// toggled by the host via 0x10. Batching stays on either way.
	broadcastPresses bool
}

// New constructs a session. The first Tick always broadcasts the layer: the
// remembered layer starts at an impossible sentinel so a freshly attached
// host learns the current layer without asking.
func New(cfg Config, src StateSource, tr Transport) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		cfg:       cfg,
		src:       src,
		tr:        tr,
		lastLayer: 0xFF,
		tracked:   newTracker(cfg.TrackerCapacity),
		batch:     make([]hid.KeyEvent, 0, cfg.BatchCapacity),
	}
}

// Tick runs one scheduler tick: per-field change detection on the sampled
// state, then the batch idle-timeout check. now is the platform's monotonic
// millisecond counter.
func (s *Session) Tick(now uint32) {
	s.observe()
	s.flushIfStale(now)
}

// observe samples the three state fields and broadcasts each one that
// changed since its last broadcast. The checks are independent on purpose:
// the host updates only the UI element that actually changed.
func (s *Session) observe() {
	if layer := EffectiveLayer(s.src.LayerState(), s.src.DefaultLayerState()); layer != s.lastLayer {
		s.lastLayer = layer
		s.tr.Send(hid.LayerFrame(layer))
	}
	if caps := s.src.CapsWordActive(); caps != s.lastCaps {
		s.lastCaps = caps
		s.tr.Send(hid.CapsWordFrame(caps))
	}
	if mods := s.src.ModifierMask(); mods != s.lastMods {
		s.lastMods = mods
		s.tr.Send(hid.ModifierFrame(mods))
	}
}

// SubmitKeyEvent is the primary per-key-event hook, called from the matrix
// processing pipeline.
func (s *Session) SubmitKeyEvent(kind hid.EventKind, row, col uint8, now uint32) {
	s.submit(kind, row, col, now)
}

// SubmitResolvedKeyEvent is the post-processing hook, called after tap-hold
// resolution for events the primary hook never saw. Either hook may fire for
// a given key; the tracked-key dedup collapses them to one logical event.
func (s *Session) SubmitResolvedKeyEvent(kind hid.EventKind, row, col uint8, now uint32) {
	s.submit(kind, row, col, now)
}

func (s *Session) submit(kind hid.EventKind, row, col uint8, now uint32) {
	switch kind {
	case hid.Press:
		if s.tracked.contains(row, col) {
			return
		}
		s.tracked.insert(row, col)
	case hid.Release:
		if !s.tracked.contains(row, col) {
			return
		}
		s.tracked.remove(row, col)
	default:
		return
	}

	if s.broadcastPresses {
		s.tr.Send(hid.KeyFrame(hid.KeyEvent{Kind: kind, Row: row, Col: col}))
	}

	if len(s.batch) >= s.cfg.BatchCapacity {
		s.flush()
	}
	s.batch = append(s.batch, hid.KeyEvent{Kind: kind, Row: row, Col: col})
	s.batchStamp = now

	// Presses must reach the host with minimal latency; only releases wait
	// for coalescing.
	if kind == hid.Press {
		s.flush()
	}
}

// flush transmits the pending batch and empties it unconditionally.
func (s *Session) flush() {
	if len(s.batch) == 0 {
		return
	}
	s.tr.Send(hid.BatchFrame(s.batch))
	s.batch = s.batch[:0]
}

// flushIfStale flushes a non-empty batch once no event has arrived for
// longer than the timeout. Subtraction is wrap-safe on the uint32 counter.
func (s *Session) flushIfStale(now uint32) {
	if len(s.batch) == 0 {
		return
	}
	if now-s.batchStamp > s.cfg.BatchTimeoutMs {
		s.flush()
	}
}

// TrackedKeys returns how many keys are currently tracked as held.
func (s *Session) TrackedKeys() int { return s.tracked.len() }

// HandleHostFrame is the receive callback for host-originated frames. It
// returns false for anything it does not own so the caller can fall through
// to the next protocol handler sharing the endpoint (e.g. Vial).
func (s *Session) HandleHostFrame(data []byte) bool {
	msg, err := hid.Decode(data)
	if err != nil {
		return false
	}
	switch msg.(type) {
	case hid.RequestState, hid.Heartbeat:
		layer := EffectiveLayer(s.src.LayerState(), s.src.DefaultLayerState())
		s.tr.Send(hid.FullStateFrame(layer, s.src.CapsWordActive(), s.src.ModifierMask()))
		return true
	case hid.TogglePresses:
		s.broadcastPresses = !s.broadcastPresses
		return true
	default:
		return false
	}
}
