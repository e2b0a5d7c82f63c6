package hid

// Kind is the message discriminator carried in byte 0 of every frame.
type Kind uint8

// Frame kinds. RequestState, Heartbeat and TogglePresses travel host->device;
// everything else travels device->host.
const (
	KindRequestState  Kind = 0x00
	KindLayerState    Kind = 0x01
	KindKeyPress      Kind = 0x02
	KindKeyRelease    Kind = 0x03
	KindCapsWordState Kind = 0x04
	KindModifierState Kind = 0x05
	KindHeartbeat     Kind = 0x06
	KindFullState     Kind = 0x07
	KindKeyBatch      Kind = 0x08
	KindTogglePresses Kind = 0x10
)

// KindName maps frame kinds to short names for logging.
var KindName = map[Kind]string{
	KindRequestState:  "RequestState",
	KindLayerState:    "LayerState",
	KindKeyPress:      "KeyPress",
	KindKeyRelease:    "KeyRelease",
	KindCapsWordState: "CapsWordState",
	KindModifierState: "ModifierState",
	KindHeartbeat:     "Heartbeat",
	KindFullState:     "FullState",
	KindKeyBatch:      "KeyBatch",
	KindTogglePresses: "TogglePresses",
}

func (k Kind) String() string {
	if n, ok := KindName[k]; ok {
		return n
	}
	return "Unknown"
}
