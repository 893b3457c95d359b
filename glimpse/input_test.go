package glimpse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMouseDeltaSinceLastFrame(t *testing.T) {
	var input InputState

	// the first position only starts tracking
	input.Mouse.position(10, 10)
	input.Mouse.position(15, 8)
	input.Mouse.position(20, 4)

	require.Equal(t, float32(10), input.Mouse.DeltaX)
	require.Equal(t, float32(-6), input.Mouse.DeltaY)

	input.nextTick()
	require.Zero(t, input.Mouse.DeltaX)
	require.Zero(t, input.Mouse.DeltaY)

	input.Mouse.position(21, 4)
	require.Equal(t, float32(1), input.Mouse.DeltaX)
}

func TestButtonsJustPressedLastsOneFrame(t *testing.T) {
	var input InputState

	input.Keys.press(KeySpace)
	input.Mouse.press(MouseButtonLeft)
	input.Mouse.scroll(1.5)

	require.True(t, input.Keys.JustPressed[KeySpace])
	require.True(t, input.Mouse.Pressed[MouseButtonLeft])
	require.Equal(t, float32(1.5), input.Mouse.ScrollY)

	input.nextTick()

	require.False(t, input.Keys.JustPressed[KeySpace])
	require.True(t, input.Keys.Pressed[KeySpace])
	require.True(t, input.Mouse.Pressed[MouseButtonLeft])
	require.Zero(t, input.Mouse.ScrollY)

	input.Keys.release(KeySpace)
	require.False(t, input.Keys.Pressed[KeySpace])
	require.True(t, input.Keys.JustReleased[KeySpace])
}
