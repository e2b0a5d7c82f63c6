// Package hid implements the Yxa raw HID broadcast protocol: fixed 32-byte
// frames with a kind byte followed by a kind-specific, zero-padded payload.
//
// The device side only encodes and the host side only decodes, but both
// directions live here so the two stay in lockstep.
package hid

// FrameSize is the raw HID endpoint report size. Every frame is exactly this
// long on the wire; unused payload bytes are zero.
const FrameSize = 32

// MaxBatchEvents is the number of 3-byte key event entries that fit in a
// batch frame after the kind and count bytes.
const MaxBatchEvents = (FrameSize - 2) / 3

// Frame is a single raw HID report.
type Frame [FrameSize]byte

// Kind returns the message discriminator in byte 0.
func (f Frame) Kind() Kind { return Kind(f[0]) }

// Bytes returns the frame as a slice for transports that want []byte.
func (f Frame) Bytes() []byte { return f[:] }

// EventKind discriminates press from release in key events.
type EventKind uint8

const (
	Press EventKind = iota
	Release
)

func (k EventKind) String() string {
	if k == Press {
		return "press"
	}
	return "release"
}

// wireByte maps an EventKind to the kind byte used on the wire, both for the
// legacy single-key frames and for entries inside a batch.
func (k EventKind) wireByte() byte {
	if k == Press {
		return byte(KindKeyPress)
	}
	return byte(KindKeyRelease)
}

// KeyEvent is one logical key transition at a matrix coordinate.
type KeyEvent struct {
	Kind EventKind
	Row  uint8
	Col  uint8
}

// Coord is a matrix coordinate.
type Coord struct {
	Row uint8
	Col uint8
}

// LayerFrame encodes a layer-changed broadcast.
func LayerFrame(layer uint8) Frame {
	var f Frame
	f[0] = byte(KindLayerState)
	f[1] = layer
	return f
}

// KeyFrame encodes a legacy single key press/release broadcast.
func KeyFrame(ev KeyEvent) Frame {
	var f Frame
	f[0] = ev.Kind.wireByte()
	f[1] = ev.Row
	f[2] = ev.Col
	return f
}

// CapsWordFrame encodes a Caps Word state broadcast.
func CapsWordFrame(active bool) Frame {
	var f Frame
	f[0] = byte(KindCapsWordState)
	if active {
		f[1] = 1
	}
	return f
}

// ModifierFrame encodes a modifier mask broadcast.
func ModifierFrame(mask uint8) Frame {
	var f Frame
	f[0] = byte(KindModifierState)
	f[1] = mask
	return f
}

// FullStateFrame encodes the response to a state request or heartbeat.
// The pressed-key count (byte 4) is always zero: the host derives its
// pressed-key view from the event stream, not from this snapshot.
func FullStateFrame(layer uint8, capsWord bool, modifiers uint8) Frame {
	var f Frame
	f[0] = byte(KindFullState)
	f[1] = layer
	if capsWord {
		f[2] = 1
	}
	f[3] = modifiers
	f[4] = 0
	return f
}

// BatchFrame encodes up to MaxBatchEvents key events into one frame.
// Events beyond the wire capacity are truncated; callers flush before that
// can happen, so truncation here is defensive, not an error.
func BatchFrame(events []KeyEvent) Frame {
	var f Frame
	f[0] = byte(KindKeyBatch)
	n := len(events)
	if n > MaxBatchEvents {
		n = MaxBatchEvents
	}
	f[1] = uint8(n)
	for i := 0; i < n; i++ {
		off := 2 + i*3
		f[off] = events[i].Kind.wireByte()
		f[off+1] = events[i].Row
		f[off+2] = events[i].Col
	}
	return f
}

// RequestStateFrame encodes a host-originated full-state request.
func RequestStateFrame() Frame {
	var f Frame
	f[0] = byte(KindRequestState)
	return f
}

// HeartbeatFrame encodes a host-originated heartbeat ping.
func HeartbeatFrame() Frame {
	var f Frame
	f[0] = byte(KindHeartbeat)
	return f
}

// TogglePressesFrame encodes the host request that toggles the legacy
// per-key press/release frames on the device.
func TogglePressesFrame() Frame {
	var f Frame
	f[0] = byte(KindTogglePresses)
	return f
}
