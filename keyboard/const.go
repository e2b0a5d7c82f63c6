package keyboard

// Modifier bitmasks, matching the HID boot-report modifier byte.
const (
	ModLeftCtrl   = 0x01
	ModLeftShift  = 0x02
	ModLeftAlt    = 0x04
	ModLeftGUI    = 0x08
	ModRightCtrl  = 0x10
	ModRightShift = 0x20
	ModRightAlt   = 0x40
	ModRightGUI   = 0x80
)

// ModMaskShift selects either shift.
const ModMaskShift = ModLeftShift | ModRightShift

// HID usage codes for the keys the runtime and host display care about.
const (
	KeyA = 0x04
	KeyB = 0x05
	KeyC = 0x06
	KeyD = 0x07
	KeyE = 0x08
	KeyF = 0x09
	KeyG = 0x0A
	KeyH = 0x0B
	KeyI = 0x0C
	KeyJ = 0x0D
	KeyK = 0x0E
	KeyL = 0x0F
	KeyM = 0x10
	KeyN = 0x11
	KeyO = 0x12
	KeyP = 0x13
	KeyQ = 0x14
	KeyR = 0x15
	KeyS = 0x16
	KeyT = 0x17
	KeyU = 0x18
	KeyV = 0x19
	KeyW = 0x1A
	KeyX = 0x1B
	KeyY = 0x1C
	KeyZ = 0x1D

	Key1 = 0x1E
	Key2 = 0x1F
	Key3 = 0x20
	Key4 = 0x21
	Key5 = 0x22
	Key6 = 0x23
	Key7 = 0x24
	Key8 = 0x25
	Key9 = 0x26
	Key0 = 0x27

	KeyEnter     = 0x28
	KeyEscape    = 0x29
	KeyBackspace = 0x2A
	KeyTab       = 0x2B
	KeySpace     = 0x2C
	KeyMinus     = 0x2D // - and _
	KeyDelete    = 0x4C

	// Modifier usages occupy 0xE0-0xE7, mirroring the mask bits above.
	KeyLeftCtrl   = 0xE0
	KeyLeftShift  = 0xE1
	KeyLeftAlt    = 0xE2
	KeyLeftGUI    = 0xE3
	KeyRightCtrl  = 0xE4
	KeyRightShift = 0xE5
	KeyRightAlt   = 0xE6
	KeyRightGUI   = 0xE7
)

// KeyName maps the usage codes above to readable names for logging.
var KeyName = map[uint8]string{
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",

	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",

	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeySpace:     "Space",
	KeyMinus:     "Minus",
	KeyDelete:    "Delete",

	KeyLeftCtrl: "LCtrl", KeyLeftShift: "LShift", KeyLeftAlt: "LAlt", KeyLeftGUI: "LGui",
	KeyRightCtrl: "RCtrl", KeyRightShift: "RShift", KeyRightAlt: "RAlt", KeyRightGUI: "RGui",
}

// IsModifierUsage reports whether a usage code is one of the eight modifier
// keys.
func IsModifierUsage(usage uint8) bool {
	return usage >= KeyLeftCtrl && usage <= KeyRightGUI
}

// ModifierBit returns the modifier mask bit for a modifier usage code, or 0
// for non-modifier usages.
func ModifierBit(usage uint8) uint8 {
	if !IsModifierUsage(usage) {
		return 0
	}
	return 1 << (usage - KeyLeftCtrl)
}
