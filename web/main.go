//go:build js

package main

import (
	"log/slog"
	"net/url"
	"os"
	"syscall/js"

	"github.com/oliverbestmann/vitrine/orion"
)

// modelURL resolves the model against the page url. A "model" query
// parameter replaces the default file name.
func modelURL() string {
	page, err := url.Parse(js.Global().Get("location").Get("href").String())
	orion.Handle(err, "parse page url")

	name := page.Query().Get("model")
	if name == "" {
		name = "hamster.glb"
	}

	ref, err := url.Parse(name)
	orion.Handle(err, "parse model url %q", name)

	return page.ResolveReference(ref).String()
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))

	err := orion.RunViewer(orion.RunViewerOptions{
		Model:     modelURL(),
		Container: "canvas-container",
	})

	orion.Handle(err, "run viewer")
}
