package indicator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drakeaxelrod/yxa/indicator"
)

func TestBaseLayerColorsFollowFingers(t *testing.T) {
	// LEDs assigned to the same finger share a color on the base layers;
	// different fingers differ.
	for layer := uint8(0); layer <= 2; layer++ {
		byFinger := map[uint8]indicator.RGB{}
		for i := 0; i < indicator.LEDCount; i++ {
			finger := indicator.FingerMap[i]
			c := indicator.Color(layer, i)
			if prev, ok := byFinger[finger]; ok {
				assert.Equalf(t, prev, c, "layer %d led %d finger %d", layer, i, finger)
			} else {
				byFinger[finger] = c
			}
		}
		require.Len(t, byFinger, 5)
		seen := map[indicator.RGB]bool{}
		for _, c := range byFinger {
			seen[c] = true
		}
		assert.Len(t, seen, 5, "finger colors should be distinct")
	}
}

func TestHigherLayersAreUniform(t *testing.T) {
	for _, layer := range []uint8{3, 4, 9} {
		first := indicator.Color(layer, 0)
		for i := 1; i < indicator.LEDCount; i++ {
			assert.Equal(t, first, indicator.Color(layer, i))
		}
		assert.NotEqual(t, indicator.RGB{}, first)
	}
}

func TestLayersBeyondPaletteAreDark(t *testing.T) {
	assert.Equal(t, indicator.RGB{}, indicator.Color(10, 0))
	assert.Equal(t, indicator.RGB{}, indicator.Color(200, 5))
}

func TestColorsLength(t *testing.T) {
	out := indicator.Colors(4, indicator.LEDCount)
	require.Len(t, out, indicator.LEDCount)
	for _, c := range out {
		assert.Equal(t, out[0], c)
	}
}

type recordingDriver struct {
	colors map[int]indicator.RGB
}

func (d *recordingDriver) SetColor(index int, c indicator.RGB) {
	if d.colors == nil {
		d.colors = map[int]indicator.RGB{}
	}
	d.colors[index] = c
}

func TestApplyWritesEveryLED(t *testing.T) {
	d := &recordingDriver{}
	indicator.Apply(d, 0, indicator.LEDCount)
	require.Len(t, d.colors, indicator.LEDCount)
	for i := 0; i < indicator.LEDCount; i++ {
		assert.Equal(t, indicator.Color(0, i), d.colors[i])
	}
}
