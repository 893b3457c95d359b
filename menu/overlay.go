package menu

import (
	"sync"

	"github.com/oliverbestmann/vitrine/glitch"
)

// Item is the highlight state of a single menu entry.
type Item struct {
	Label  string
	Active bool
	Color  glitch.Color
}

// Overlay is a menu drawn by the renderer on top of the 3d scene.
// The glitch scheduler writes to it, the renderer reads a snapshot
// once per frame.
type Overlay struct {
	mu    sync.Mutex
	items []Item
}

func NewOverlay(labels ...string) *Overlay {
	items := make([]Item, len(labels))
	for idx, label := range labels {
		items[idx] = Item{Label: label}
	}

	return &Overlay{items: items}
}

func (o *Overlay) Len() int {
	return len(o.items)
}

func (o *Overlay) ClearAll() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for idx := range o.items {
		o.items[idx].Active = false
		o.items[idx].Color = glitch.Color{}
	}
}

func (o *Overlay) Activate(index int, color glitch.Color) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if index < 0 || index >= len(o.items) {
		return
	}

	o.items[index].Active = true
	o.items[index].Color = color
}

// Items returns a copy of the current item state.
func (o *Overlay) Items() []Item {
	o.mu.Lock()
	defer o.mu.Unlock()

	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

var _ glitch.Highlighter = (*Overlay)(nil)
