// Package indicator computes the per-key RGB layer indication from the
// broadcast state. On the base layers each key is tinted by the finger that
// owns it; higher layers get a uniform layer color. The LED driver itself is
// external; this package only produces colors.
package indicator

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// HSV is an 8-bit hue/saturation/value color, hue spanning 0-255.
type HSV struct {
	H, S, V uint8
}

// Driver is the external per-key LED sink.
type Driver interface {
	SetColor(index int, c RGB)
}

// LEDCount is the number of per-key LEDs on the split board (18 per half).
const LEDCount = 36

// fingerLayerMax is the highest layer that still shows finger coloring.
const fingerLayerMax = 2

// FingerMap assigns each LED index to a finger: 0=index, 1=middle, 2=ring,
// 3=pinky, 4=thumb. Left half first, then right.
var FingerMap = [LEDCount]uint8{
	0, 1, 2, 3, 3, 0, 1, 2, 3, 3, 0, 1, 2, 3, 3, 4, 4, 4,
	3, 3, 2, 1, 0, 3, 3, 2, 1, 0, 3, 3, 2, 1, 0, 4, 4, 4,
}

// fingerColors tints keys by owning finger on the base layers.
var fingerColors = [5]HSV{
	{128, 255, 180},
	{213, 255, 180},
	{85, 255, 180},
	{43, 255, 180},
	{170, 255, 180},
}

// layerColors gives each non-base layer a uniform hue.
var layerColors = [10]HSV{
	{0, 0, 128},
	{0, 0, 128},
	{0, 0, 128},
	{21, 255, 200},
	{128, 255, 200},
	{85, 255, 200},
	{213, 255, 200},
	{43, 255, 200},
	{0, 255, 200},
	{170, 255, 200},
}

// Color returns the color for one LED at the given effective layer. Layers
// beyond the palette are dark.
func Color(layer uint8, index int) RGB {
	if layer <= fingerLayerMax && index >= 0 && index < LEDCount {
		return hsvToRGB(fingerColors[FingerMap[index]])
	}
	if int(layer) < len(layerColors) {
		return hsvToRGB(layerColors[layer])
	}
	return RGB{}
}

// Colors renders the whole strip for a layer.
func Colors(layer uint8, count int) []RGB {
	out := make([]RGB, count)
	for i := range out {
		out[i] = Color(layer, i)
	}
	return out
}

// Apply writes a layer's colors through the driver.
func Apply(d Driver, layer uint8, count int) {
	for i := 0; i < count; i++ {
		d.SetColor(i, Color(layer, i))
	}
}

// hsvToRGB converts 8-bit HSV to RGB using the 43-per-sextant hue wheel.
func hsvToRGB(c HSV) RGB {
	if c.S == 0 {
		return RGB{c.V, c.V, c.V}
	}
	region := c.H / 43
	remainder := int(c.H-region*43) * 6

	v := int(c.V)
	s := int(c.S)
	p := uint8(v * (255 - s) / 255)
	q := uint8(v * (255 - s*remainder/255) / 255)
	t := uint8(v * (255 - s*(255-remainder)/255) / 255)

	switch region {
	case 0:
		return RGB{c.V, t, p}
	case 1:
		return RGB{q, c.V, p}
	case 2:
		return RGB{p, c.V, t}
	case 3:
		return RGB{p, q, c.V}
	case 4:
		return RGB{t, p, c.V}
	default:
		return RGB{c.V, p, q}
	}
}
