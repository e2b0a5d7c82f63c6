package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drakeaxelrod/yxa/hid"
)

func TestEncodeFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame hid.Frame
		want  []byte // leading bytes; the rest must be zero
	}{
		{
			name:  "layer changed",
			frame: hid.LayerFrame(4),
			want:  []byte{0x01, 4},
		},
		{
			name:  "legacy key press",
			frame: hid.KeyFrame(hid.KeyEvent{Kind: hid.Press, Row: 1, Col: 2}),
			want:  []byte{0x02, 1, 2},
		},
		{
			name:  "legacy key release",
			frame: hid.KeyFrame(hid.KeyEvent{Kind: hid.Release, Row: 3, Col: 9}),
			want:  []byte{0x03, 3, 9},
		},
		{
			name:  "caps word on",
			frame: hid.CapsWordFrame(true),
			want:  []byte{0x04, 1},
		},
		{
			name:  "caps word off",
			frame: hid.CapsWordFrame(false),
			want:  []byte{0x04, 0},
		},
		{
			name:  "modifier mask",
			frame: hid.ModifierFrame(0x22),
			want:  []byte{0x05, 0x22},
		},
		{
			name:  "full state reports zero pressed keys",
			frame: hid.FullStateFrame(2, false, 0),
			want:  []byte{0x07, 2, 0, 0, 0},
		},
		{
			name:  "full state with caps and mods",
			frame: hid.FullStateFrame(3, true, 0x02),
			want:  []byte{0x07, 3, 1, 0x02, 0},
		},
		{
			name:  "single press batch",
			frame: hid.BatchFrame([]hid.KeyEvent{{Kind: hid.Press, Row: 1, Col: 2}}),
			want:  []byte{0x08, 1, 0x02, 1, 2},
		},
		{
			name: "mixed batch keeps submission order",
			frame: hid.BatchFrame([]hid.KeyEvent{
				{Kind: hid.Press, Row: 0, Col: 1},
				{Kind: hid.Release, Row: 0, Col: 1},
				{Kind: hid.Release, Row: 2, Col: 3},
			}),
			want: []byte{0x08, 3, 0x02, 0, 1, 0x03, 0, 1, 0x03, 2, 3},
		},
		{
			name:  "request state",
			frame: hid.RequestStateFrame(),
			want:  []byte{0x00},
		},
		{
			name:  "heartbeat",
			frame: hid.HeartbeatFrame(),
			want:  []byte{0x06},
		},
		{
			name:  "toggle presses",
			frame: hid.TogglePressesFrame(),
			want:  []byte{0x10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.frame.Bytes()
			require.Len(t, b, hid.FrameSize)
			assert.Equal(t, tt.want, b[:len(tt.want)])
			for i := len(tt.want); i < hid.FrameSize; i++ {
				assert.Zerof(t, b[i], "byte %d should be zero padding", i)
			}
		})
	}
}

func TestBatchFrameTruncates(t *testing.T) {
	events := make([]hid.KeyEvent, hid.MaxBatchEvents+3)
	for i := range events {
		events[i] = hid.KeyEvent{Kind: hid.Release, Row: uint8(i), Col: 0}
	}
	f := hid.BatchFrame(events)
	assert.Equal(t, uint8(hid.MaxBatchEvents), f[1])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want hid.Message
	}{
		{"request state", hid.RequestStateFrame().Bytes(), hid.RequestState{}},
		{"heartbeat", hid.HeartbeatFrame().Bytes(), hid.Heartbeat{}},
		{"toggle presses", hid.TogglePressesFrame().Bytes(), hid.TogglePresses{}},
		{"layer", hid.LayerFrame(7).Bytes(), hid.LayerChanged{Layer: 7}},
		{"legacy press", hid.KeyFrame(hid.KeyEvent{Kind: hid.Press, Row: 2, Col: 4}).Bytes(), hid.KeyPressed{Row: 2, Col: 4}},
		{"legacy release", hid.KeyFrame(hid.KeyEvent{Kind: hid.Release, Row: 2, Col: 4}).Bytes(), hid.KeyReleased{Row: 2, Col: 4}},
		{"caps word", hid.CapsWordFrame(true).Bytes(), hid.CapsWordChanged{Active: true}},
		{"modifiers", hid.ModifierFrame(0x11).Bytes(), hid.ModifierChanged{Mask: 0x11}},
		{
			"full state",
			hid.FullStateFrame(5, true, 0x20).Bytes(),
			hid.FullState{Layer: 5, CapsWord: true, Modifiers: 0x20},
		},
		{
			"batch",
			hid.BatchFrame([]hid.KeyEvent{
				{Kind: hid.Press, Row: 1, Col: 1},
				{Kind: hid.Release, Row: 1, Col: 1},
			}).Bytes(),
			hid.KeyBatch{Events: []hid.KeyEvent{
				{Kind: hid.Press, Row: 1, Col: 1},
				{Kind: hid.Release, Row: 1, Col: 1},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hid.Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := hid.Decode(nil)
	assert.ErrorIs(t, err, hid.ErrShortFrame)

	_, err = hid.Decode([]byte{byte(hid.KindLayerState)})
	assert.ErrorIs(t, err, hid.ErrShortFrame)

	_, err = hid.Decode([]byte{byte(hid.KindKeyPress), 1})
	assert.ErrorIs(t, err, hid.ErrShortFrame)

	_, err = hid.Decode([]byte{0xFE, 0, 0})
	assert.ErrorIs(t, err, hid.ErrUnknownKind)
}

func TestDecodeBatchIgnoresTrailingGarbage(t *testing.T) {
	// A count larger than the payload actually carries must not read past
	// the buffer or invent events.
	data := []byte{byte(hid.KindKeyBatch), 5, 0x02, 1, 2}
	got, err := hid.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, hid.KeyBatch{Events: []hid.KeyEvent{{Kind: hid.Press, Row: 1, Col: 2}}}, got)
}

func TestDecodeShortRead(t *testing.T) {
	// hidraw reads can be shorter than the full report; a complete payload
	// still decodes.
	got, err := hid.Decode([]byte{byte(hid.KindLayerState), 3})
	require.NoError(t, err)
	assert.Equal(t, hid.LayerChanged{Layer: 3}, got)
}
