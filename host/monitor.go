// Package host consumes the keyboard's broadcast stream on the host side: it
// mirrors device state (layer, pressed keys, Caps Word, modifiers) from the
// frame stream and issues host-to-device requests. The stream can be the raw
// hidraw device or a bridge connection; anything that reads and writes
// 32-byte frames works.
package host

import (
	"errors"
	"io"
	"syscall"

	"github.com/drakeaxelrod/yxa/hid"
)

// Monitor mirrors keyboard state from a frame stream.
type Monitor struct {
	rw io.ReadWriter

	layer    uint8
	pressed  []hid.Coord
	capsWord bool
	mods     uint8
}

// NewMonitor wraps a frame stream. Call RequestFullState after connecting so
// the mirror starts from ground truth rather than the zero state.
func NewMonitor(rw io.ReadWriter) *Monitor {
	return &Monitor{rw: rw}
}

// Next blocks for one frame and returns the resulting events. Batch frames
// expand into one event per entry; frames that repeat already-mirrored state
// produce no events.
func (m *Monitor) Next() ([]hid.Message, error) {
	var buf [hid.FrameSize]byte
	if _, err := io.ReadFull(m.rw, buf[:]); err != nil {
		return nil, err
	}
	msg, err := hid.Decode(buf[:])
	if err != nil {
		// Unknown kinds are another protocol's traffic on the shared
		// endpoint, not a fault.
		if errors.Is(err, hid.ErrUnknownKind) {
			return nil, nil
		}
		return nil, err
	}
	return m.apply(msg), nil
}

// Poll drains every frame currently buffered on a non-blocking stream. This
// matters during rapid typing: reading one frame per UI tick loses events.
// A would-block error ends the drain silently; any other error is returned
// with the events read so far.
func (m *Monitor) Poll() ([]hid.Message, error) {
	var events []hid.Message
	for {
		evs, err := m.Next()
		events = append(events, evs...)
		if err != nil {
			if isWouldBlock(err) {
				return events, nil
			}
			return events, err
		}
	}
}

func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN)
}

func (m *Monitor) apply(msg hid.Message) []hid.Message {
	switch v := msg.(type) {
	case hid.LayerChanged:
		if v.Layer == m.layer {
			return nil
		}
		m.layer = v.Layer
		return []hid.Message{v}
	case hid.KeyPressed:
		m.press(v.Row, v.Col)
		return []hid.Message{v}
	case hid.KeyReleased:
		m.release(v.Row, v.Col)
		return []hid.Message{v}
	case hid.CapsWordChanged:
		if v.Active == m.capsWord {
			return nil
		}
		m.capsWord = v.Active
		return []hid.Message{v}
	case hid.ModifierChanged:
		if v.Mask == m.mods {
			return nil
		}
		m.mods = v.Mask
		return []hid.Message{v}
	case hid.FullState:
		m.layer = v.Layer
		m.capsWord = v.CapsWord
		m.mods = v.Modifiers
		m.pressed = append(m.pressed[:0], v.Pressed...)
		return []hid.Message{v}
	case hid.KeyBatch:
		events := make([]hid.Message, 0, len(v.Events))
		for _, ev := range v.Events {
			if ev.Kind == hid.Press {
				m.press(ev.Row, ev.Col)
				events = append(events, hid.KeyPressed{Row: ev.Row, Col: ev.Col})
			} else {
				m.release(ev.Row, ev.Col)
				events = append(events, hid.KeyReleased{Row: ev.Row, Col: ev.Col})
			}
		}
		return events
	default:
		return nil
	}
}

func (m *Monitor) press(row, col uint8) {
	if m.IsPressed(row, col) {
		return
	}
	m.pressed = append(m.pressed, hid.Coord{Row: row, Col: col})
}

func (m *Monitor) release(row, col uint8) {
	for i, c := range m.pressed {
		if c.Row == row && c.Col == col {
			m.pressed = append(m.pressed[:i], m.pressed[i+1:]...)
			return
		}
	}
}

// Layer returns the mirrored effective layer.
func (m *Monitor) Layer() uint8 { return m.layer }

// Pressed returns the mirrored pressed keys.
func (m *Monitor) Pressed() []hid.Coord { return m.pressed }

// IsPressed reports whether a coordinate is mirrored as held.
func (m *Monitor) IsPressed(row, col uint8) bool {
	for _, c := range m.pressed {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// CapsWordActive returns the mirrored Caps Word state.
func (m *Monitor) CapsWordActive() bool { return m.capsWord }

// Modifiers returns the mirrored modifier mask.
func (m *Monitor) Modifiers() uint8 { return m.mods }

// RequestFullState asks the device for a snapshot. The intended recovery
// path after any missed frame.
func (m *Monitor) RequestFullState() error {
	_, err := m.rw.Write(hid.RequestStateFrame().Bytes())
	return err
}

// Heartbeat pings the device; it answers with a full-state frame.
func (m *Monitor) Heartbeat() error {
	_, err := m.rw.Write(hid.HeartbeatFrame().Bytes())
	return err
}

// TogglePresses flips the device's legacy per-key frame broadcasting.
func (m *Monitor) TogglePresses() error {
	_, err := m.rw.Write(hid.TogglePressesFrame().Bytes())
	return err
}
