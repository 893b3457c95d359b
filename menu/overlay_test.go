package menu

import (
	"math/rand/v2"
	"testing"

	"github.com/oliverbestmann/vitrine/glitch"
	"github.com/oliverbestmann/vitrine/tick/ticktest"
	"github.com/stretchr/testify/require"
)

func activeItems(items []Item) []int {
	var active []int
	for idx, item := range items {
		if item.Active {
			active = append(active, idx)
		}
	}

	return active
}

func TestOverlayActivate(t *testing.T) {
	overlay := NewOverlay(DefaultLabels...)
	require.Equal(t, 4, overlay.Len())

	overlay.Activate(2, glitch.Color{R: 60, G: 70, B: 80})
	overlay.Activate(9, glitch.Color{R: 1})

	items := overlay.Items()
	require.Equal(t, []int{2}, activeItems(items))
	require.Equal(t, glitch.Color{R: 60, G: 70, B: 80}, items[2].Color)
	require.Equal(t, "About", items[2].Label)

	overlay.ClearAll()
	require.Empty(t, activeItems(overlay.Items()))
}

func TestOverlayItemsIsSnapshot(t *testing.T) {
	overlay := NewOverlay("a", "b")

	items := overlay.Items()
	items[0].Active = true

	require.Empty(t, activeItems(overlay.Items()))
}

func TestOverlayDrivenByScheduler(t *testing.T) {
	host := ticktest.NewHost()
	overlay := NewOverlay(DefaultLabels...)

	scheduler := glitch.NewScheduler(overlay, rand.New(rand.NewPCG(3, 4)))
	task := scheduler.Start(host)
	defer task.Stop()

	for range 50 {
		require.Equal(t, []int{scheduler.Active()}, activeItems(overlay.Items()))
		host.FireNext()
	}
}

func TestLayoutStacksBars(t *testing.T) {
	items := []Item{{Label: "a"}, {Label: "b", Active: true, Color: glitch.Color{R: 99}}, {Label: "c"}}

	opts := DefaultLayout
	opts.Scale = 2

	bars := Layout(items, 1000, opts)
	require.Len(t, bars, 3)

	require.Equal(t, float32(64), bars[0].X)
	require.Equal(t, float32(64), bars[0].Y)
	require.Equal(t, float32(64+88), bars[1].Y)
	require.Equal(t, float32(72), bars[1].Height)

	require.True(t, bars[1].Active)
	require.Equal(t, uint8(99), bars[1].Color.R)
}

func TestLayoutDropsBarsOutsideViewport(t *testing.T) {
	items := make([]Item, 10)

	bars := Layout(items, 150, DefaultLayout)
	require.Len(t, bars, 2)

	require.Empty(t, Layout(items, 0, DefaultLayout))
}
