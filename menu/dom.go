//go:build js

package menu

import (
	"log/slog"
	"syscall/js"

	"github.com/oliverbestmann/vitrine/glitch"
)

// DOM highlights the menu items of the hosting page. The set of
// elements is captured once, items added later are not seen.
type DOM struct {
	elements []js.Value
}

// QueryDOM collects all elements matching selector.
func QueryDOM(selector string) *DOM {
	nodes := js.Global().Get("document").Call("querySelectorAll", selector)

	count := nodes.Length()
	elements := make([]js.Value, 0, count)
	for idx := range count {
		elements = append(elements, nodes.Index(idx))
	}

	slog.Info("Found menu items", slog.String("selector", selector), slog.Int("count", count))

	return &DOM{elements: elements}
}

func (d *DOM) Len() int {
	return len(d.elements)
}

func (d *DOM) ClearAll() {
	for _, element := range d.elements {
		element.Get("classList").Call("remove", ActiveClass)
		element.Get("style").Set("background", "transparent")
	}
}

func (d *DOM) Activate(index int, color glitch.Color) {
	element := d.elements[index]
	element.Get("classList").Call("add", ActiveClass)
	element.Get("style").Set("background", color.Gradient())
}

var _ glitch.Highlighter = (*DOM)(nil)
