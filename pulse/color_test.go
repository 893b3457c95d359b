package pulse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorDefaultIsWhite(t *testing.T) {
	var c Color
	require.Equal(t, ColorWhite, c)
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, value := range []float32{0, 0.002, 0.02, 0.2, 0.5, 1} {
		c := ColorSRGBA(value, value, value, 1).ToSRGB()
		require.InDelta(t, value, c.Red(), 1e-5)
	}
}

func TestColorSRGB8(t *testing.T) {
	c := ColorSRGB8(255, 0, 128)
	require.InDelta(t, 1, c.Red(), 1e-6)
	require.InDelta(t, 0, c.Green(), 1e-6)
	require.InDelta(t, 0.2158, c.Blue(), 1e-3)
	require.Equal(t, float32(1), c.Alpha())
}

func TestRectangleTriangles(t *testing.T) {
	r := RectangleFromXYWH[float32](1, 2, 3, 4)
	require.Equal(t, float32(3), r.Width())
	require.True(t, RectangleFromXYWH[float32](0, 0, 10, 10).Contains(r))

	corners := r.Triangles()
	require.Equal(t, r.Min, corners[0])
	require.Equal(t, r.Max, corners[2])
}
