// Package keyboard models the runtime keyboard state the broadcast observer
// samples: layer bitmasks, held and one-shot modifiers, and Caps Word. It is
// the in-process stand-in for the firmware's layer/tap-hold engine, used by
// the simulator and by tests.
package keyboard

// State holds the transient keyboard-wide state. It implements
// broadcast.StateSource. Like the broadcast session it is single-owner:
// callers driving it from multiple goroutines must serialize access.
type State struct {
	momentary uint32
	defaults  uint32
	heldMods  uint8
	oneShot   uint8
	capsWord  bool
}

// NewState returns a State with layer 0 as the default layer.
func NewState() *State {
	return &State{defaults: 1}
}

// LayerState returns the momentary layer bitmask.
func (s *State) LayerState() uint32 { return s.momentary }

// DefaultLayerState returns the default layer bitmask.
func (s *State) DefaultLayerState() uint32 { return s.defaults }

// ModifierMask returns held and one-shot modifiers ORed together.
func (s *State) ModifierMask() uint8 { return s.heldMods | s.oneShot }

// CapsWordActive reports whether Caps Word is on.
func (s *State) CapsWordActive() bool { return s.capsWord }

// MomentaryOn activates a held layer.
func (s *State) MomentaryOn(layer uint8) {
	s.momentary |= 1 << layer
}

// MomentaryOff deactivates a held layer.
func (s *State) MomentaryOff(layer uint8) {
	s.momentary &^= 1 << layer
}

// SetDefaultLayer replaces the default layer selection.
func (s *State) SetDefaultLayer(layer uint8) {
	s.defaults = 1 << layer
}

// HoldModifier marks modifier bits as held.
func (s *State) HoldModifier(mask uint8) {
	s.heldMods |= mask
}

// ReleaseModifier clears held modifier bits.
func (s *State) ReleaseModifier(mask uint8) {
	s.heldMods &^= mask
}

// ArmOneShot arms modifier bits for exactly the next non-modifier key.
func (s *State) ArmOneShot(mask uint8) {
	s.oneShot |= mask
}

// OneShotArmed returns the currently armed one-shot bits.
func (s *State) OneShotArmed() uint8 { return s.oneShot }

// SetCapsWord turns Caps Word on or off.
func (s *State) SetCapsWord(active bool) {
	s.capsWord = active
}

// ToggleCapsWord flips Caps Word.
func (s *State) ToggleCapsWord() {
	s.capsWord = !s.capsWord
}

// NotifyKey feeds a key press (by usage code) through the state machinery:
// modifier usages are folded into the held mask by the caller, so here they
// only matter as "not a real keystroke". A non-modifier key consumes any
// armed one-shot modifiers and, if it is a word boundary, cancels Caps Word.
func (s *State) NotifyKey(usage uint8) {
	if IsModifierUsage(usage) {
		return
	}
	s.oneShot = 0
	if s.capsWord && !capsWordContinues(usage) {
		s.capsWord = false
	}
}

// capsWordContinues reports whether a keystroke keeps Caps Word alive.
// Letters, digits, minus/underscore, backspace and delete continue the word;
// everything else ends it.
func capsWordContinues(usage uint8) bool {
	switch {
	case usage >= KeyA && usage <= KeyZ:
		return true
	case usage >= Key1 && usage <= Key0:
		return true
	case usage == KeyMinus, usage == KeyBackspace, usage == KeyDelete:
		return true
	default:
		return false
	}
}
