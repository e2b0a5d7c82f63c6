package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drakeaxelrod/yxa/broadcast"
	"github.com/drakeaxelrod/yxa/keyboard"
)

func TestNewStateDefaults(t *testing.T) {
	s := keyboard.NewState()
	assert.Equal(t, uint32(0), s.LayerState())
	assert.Equal(t, uint32(1), s.DefaultLayerState())
	assert.Equal(t, uint8(0), s.ModifierMask())
	assert.False(t, s.CapsWordActive())
}

func TestMomentaryLayers(t *testing.T) {
	s := keyboard.NewState()
	s.MomentaryOn(3)
	s.MomentaryOn(1)
	assert.Equal(t, uint32(1<<3|1<<1), s.LayerState())

	s.MomentaryOff(3)
	assert.Equal(t, uint32(1<<1), s.LayerState())

	// Turning off an inactive layer is harmless.
	s.MomentaryOff(7)
	assert.Equal(t, uint32(1<<1), s.LayerState())
}

func TestSetDefaultLayer(t *testing.T) {
	s := keyboard.NewState()
	s.SetDefaultLayer(2)
	assert.Equal(t, uint32(1<<2), s.DefaultLayerState())
	assert.Equal(t, uint8(2), broadcast.EffectiveLayer(s.LayerState(), s.DefaultLayerState()))

	s.MomentaryOn(5)
	assert.Equal(t, uint8(5), broadcast.EffectiveLayer(s.LayerState(), s.DefaultLayerState()))
}

func TestHeldModifiers(t *testing.T) {
	s := keyboard.NewState()
	s.HoldModifier(keyboard.ModLeftShift)
	s.HoldModifier(keyboard.ModLeftCtrl)
	assert.Equal(t, uint8(keyboard.ModLeftShift|keyboard.ModLeftCtrl), s.ModifierMask())

	s.ReleaseModifier(keyboard.ModLeftShift)
	assert.Equal(t, uint8(keyboard.ModLeftCtrl), s.ModifierMask())

	// Held modifiers survive keystrokes.
	s.NotifyKey(keyboard.KeyA)
	assert.Equal(t, uint8(keyboard.ModLeftCtrl), s.ModifierMask())
}

func TestOneShotConsumedByNextKey(t *testing.T) {
	s := keyboard.NewState()
	s.ArmOneShot(keyboard.ModLeftShift)
	assert.Equal(t, uint8(keyboard.ModLeftShift), s.ModifierMask())
	assert.Equal(t, uint8(keyboard.ModLeftShift), s.OneShotArmed())

	// A modifier keystroke does not consume the one-shot.
	s.NotifyKey(keyboard.KeyLeftCtrl)
	assert.Equal(t, uint8(keyboard.ModLeftShift), s.OneShotArmed())

	s.NotifyKey(keyboard.KeyA)
	assert.Equal(t, uint8(0), s.OneShotArmed())
	assert.Equal(t, uint8(0), s.ModifierMask())
}

func TestCapsWordContinuation(t *testing.T) {
	continues := []uint8{
		keyboard.KeyA, keyboard.KeyZ, keyboard.Key1, keyboard.Key0,
		keyboard.KeyMinus, keyboard.KeyBackspace, keyboard.KeyDelete,
	}
	for _, usage := range continues {
		t.Run(keyboard.KeyName[usage], func(t *testing.T) {
			s := keyboard.NewState()
			s.SetCapsWord(true)
			s.NotifyKey(usage)
			assert.True(t, s.CapsWordActive())
		})
	}

	ends := []uint8{keyboard.KeySpace, keyboard.KeyEnter, keyboard.KeyTab, keyboard.KeyEscape}
	for _, usage := range ends {
		t.Run(keyboard.KeyName[usage], func(t *testing.T) {
			s := keyboard.NewState()
			s.SetCapsWord(true)
			s.NotifyKey(usage)
			assert.False(t, s.CapsWordActive())
		})
	}
}

func TestCapsWordIgnoresModifierKeys(t *testing.T) {
	s := keyboard.NewState()
	s.SetCapsWord(true)
	s.NotifyKey(keyboard.KeyLeftShift)
	assert.True(t, s.CapsWordActive())
}

func TestToggleCapsWord(t *testing.T) {
	s := keyboard.NewState()
	s.ToggleCapsWord()
	assert.True(t, s.CapsWordActive())
	s.ToggleCapsWord()
	assert.False(t, s.CapsWordActive())
}

func TestModifierBit(t *testing.T) {
	assert.Equal(t, uint8(keyboard.ModLeftCtrl), keyboard.ModifierBit(keyboard.KeyLeftCtrl))
	assert.Equal(t, uint8(keyboard.ModLeftShift), keyboard.ModifierBit(keyboard.KeyLeftShift))
	assert.Equal(t, uint8(keyboard.ModRightGUI), keyboard.ModifierBit(keyboard.KeyRightGUI))
	assert.Equal(t, uint8(0), keyboard.ModifierBit(keyboard.KeyA))
}
