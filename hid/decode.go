package hid

import "errors"

var (
	// ErrShortFrame reports a buffer too short for its declared kind.
	ErrShortFrame = errors.New("hid: frame too short")
	// ErrUnknownKind reports an unrecognized kind byte.
	ErrUnknownKind = errors.New("hid: unknown frame kind")
)

// Message is a decoded frame. The concrete type identifies the kind.
type Message interface {
	isMessage()
}

// RequestState asks the device for a FullState response.
type RequestState struct{}

// Heartbeat is a host liveness ping; the device answers with FullState.
type Heartbeat struct{}

// TogglePresses flips the device's legacy per-key frame broadcasting.
type TogglePresses struct{}

// LayerChanged reports the effective layer after a change.
type LayerChanged struct {
	Layer uint8
}

// KeyPressed is a legacy single-key press broadcast.
type KeyPressed struct {
	Row, Col uint8
}

// KeyReleased is a legacy single-key release broadcast.
type KeyReleased struct {
	Row, Col uint8
}

// CapsWordChanged reports the Caps Word toggle after a change.
type CapsWordChanged struct {
	Active bool
}

// ModifierChanged reports the modifier mask after a change.
type ModifierChanged struct {
	Mask uint8
}

// FullState is the device's snapshot response. Pressed is decoded for forward
// compatibility but current firmware always reports zero pressed keys.
type FullState struct {
	Layer     uint8
	CapsWord  bool
	Modifiers uint8
	Pressed   []Coord
}

// KeyBatch carries coalesced key events in submission order.
type KeyBatch struct {
	Events []KeyEvent
}

func (RequestState) isMessage()    {}
func (Heartbeat) isMessage()       {}
func (TogglePresses) isMessage()   {}
func (LayerChanged) isMessage()    {}
func (KeyPressed) isMessage()      {}
func (KeyReleased) isMessage()     {}
func (CapsWordChanged) isMessage() {}
func (ModifierChanged) isMessage() {}
func (FullState) isMessage()       {}
func (KeyBatch) isMessage()        {}

// Decode parses one frame. Buffers shorter than FrameSize are accepted as
// long as the payload for the declared kind is complete; hidraw reads can be
// short on some kernels.
func Decode(data []byte) (Message, error) {
	if len(data) < 1 {
		return nil, ErrShortFrame
	}
	switch Kind(data[0]) {
	case KindRequestState:
		return RequestState{}, nil
	case KindHeartbeat:
		return Heartbeat{}, nil
	case KindTogglePresses:
		return TogglePresses{}, nil
	case KindLayerState:
		if len(data) < 2 {
			return nil, ErrShortFrame
		}
		return LayerChanged{Layer: data[1]}, nil
	case KindKeyPress:
		if len(data) < 3 {
			return nil, ErrShortFrame
		}
		return KeyPressed{Row: data[1], Col: data[2]}, nil
	case KindKeyRelease:
		if len(data) < 3 {
			return nil, ErrShortFrame
		}
		return KeyReleased{Row: data[1], Col: data[2]}, nil
	case KindCapsWordState:
		if len(data) < 2 {
			return nil, ErrShortFrame
		}
		return CapsWordChanged{Active: data[1] != 0}, nil
	case KindModifierState:
		if len(data) < 2 {
			return nil, ErrShortFrame
		}
		return ModifierChanged{Mask: data[1]}, nil
	case KindFullState:
		if len(data) < 5 {
			return nil, ErrShortFrame
		}
		st := FullState{
			Layer:     data[1],
			CapsWord:  data[2] != 0,
			Modifiers: data[3],
		}
		count := int(data[4])
		for i := 0; i < count; i++ {
			off := 5 + i*2
			if off+1 >= len(data) {
				break
			}
			st.Pressed = append(st.Pressed, Coord{Row: data[off], Col: data[off+1]})
		}
		return st, nil
	case KindKeyBatch:
		if len(data) < 2 {
			return nil, ErrShortFrame
		}
		count := int(data[1])
		var b KeyBatch
		for i := 0; i < count; i++ {
			off := 2 + i*3
			if off+2 >= len(data) {
				break
			}
			ev := KeyEvent{Row: data[off+1], Col: data[off+2]}
			switch Kind(data[off]) {
			case KindKeyPress:
				ev.Kind = Press
			case KindKeyRelease:
				ev.Kind = Release
			default:
				continue
			}
			b.Events = append(b.Events, ev)
		}
		return b, nil
	default:
		return nil, ErrUnknownKind
	}
}
