package pulse

import (
	"math"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var ColorWhite = ColorLinearRGBA(1, 1, 1, 1)

// Color is a straight alpha rgba value in linear color space. The
// components are stored as offsets from one, so the zero Color is
// opaque white.
type Color struct {
	offset glm.Vec4f
}

func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{offset: glm.Vec4f{r - 1, g - 1, b - 1, a - 1}}
}

// ColorSRGBA converts srgb encoded components, as found in images and
// css, into linear space.
func ColorSRGBA(r, g, b, a float32) Color {
	return ColorLinearRGBA(srgbToLinear(r), srgbToLinear(g), srgbToLinear(b), a)
}

// ColorSRGB8 creates an opaque Color from 8 bit srgb channels.
func ColorSRGB8(r, g, b uint8) Color {
	return ColorSRGBA(float32(r)/255, float32(g)/255, float32(b)/255, 1)
}

func (c Color) ToVec() glm.Vec4f {
	return c.offset.Add(glm.Vec4f{1, 1, 1, 1})
}

func (c Color) ToWGPU() wgpu.Color {
	v := c.ToVec()
	return wgpu.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
}

func (c Color) Red() float32   { return c.offset[0] + 1 }
func (c Color) Green() float32 { return c.offset[1] + 1 }
func (c Color) Blue() float32  { return c.offset[2] + 1 }
func (c Color) Alpha() float32 { return c.offset[3] + 1 }

// ToSRGB encodes the rgb components to srgb, for targets that store
// values as they are.
func (c Color) ToSRGB() Color {
	return ColorLinearRGBA(linearToSRGB(c.Red()), linearToSRGB(c.Green()), linearToSRGB(c.Blue()), c.Alpha())
}

// https://www.w3.org/TR/css-color-4/#color-conversion-code
func linearToSRGB(value float32) float32 {
	x := float64(value)
	if math.Abs(x) <= 0.0031308 {
		return float32(x * 12.92)
	}

	return float32(math.Copysign(1.055*math.Pow(math.Abs(x), 1/2.4)-0.055, x))
}

func srgbToLinear(value float32) float32 {
	x := float64(value)
	if math.Abs(x) <= 0.04045 {
		return float32(x / 12.92)
	}

	return float32(math.Copysign(math.Pow((math.Abs(x)+0.055)/1.055, 2.4), x))
}
