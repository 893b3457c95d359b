package glimpse

import "log/slog"

type MouseButton uint32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Buttons tracks keys or mouse buttons. The Just maps only hold the
// changes since the previous frame.
type Buttons[B comparable] struct {
	Pressed      map[B]bool
	JustPressed  map[B]bool
	JustReleased map[B]bool
}

func (b *Buttons[B]) press(button B) {
	slog.Debug("Button pressed", slog.Any("button", button))

	set(&b.Pressed, button, true)
	set(&b.JustPressed, button, true)
}

func (b *Buttons[B]) release(button B) {
	set(&b.Pressed, button, false)
	set(&b.JustReleased, button, true)
}

func (b *Buttons[B]) nextTick() {
	clear(b.JustPressed)
	clear(b.JustReleased)
}

type KeysState = Buttons[Key]

type MouseState struct {
	Buttons[MouseButton]

	CursorX, CursorY float32

	// cursor movement since the last frame
	DeltaX, DeltaY float32

	// scroll wheel movement since the last frame, positive is up
	ScrollY float32

	// false until the first cursor position arrived
	tracking bool
}

func (m *MouseState) position(x, y float32) {
	if m.tracking {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX, m.CursorY = x, y
	m.tracking = true
}

func (m *MouseState) scroll(dy float32) {
	m.ScrollY += dy
}

func (m *MouseState) nextTick() {
	m.Buttons.nextTick()

	m.DeltaX, m.DeltaY = 0, 0
	m.ScrollY = 0
}

type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

func (s *InputState) nextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

func set[K comparable](m *map[K]bool, key K, value bool) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = value
}
