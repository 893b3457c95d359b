//go:build !js

package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/oliverbestmann/vitrine/orion"
	"github.com/oliverbestmann/vitrine/viewport"
)

type cli struct {
	Model string `arg:"" optional:"" help:"Path or http(s) url of a glTF or GLB model."`

	Width  int    `default:"1000" help:"Initial window width."`
	Height int    `default:"600" help:"Initial window height."`
	Title  string `default:"Vitrine" help:"Window title."`

	Menu []string `sep:"none" placeholder:"LABEL" help:"Label of a menu item, repeat for more items."`

	SpinY float64 `default:"0.005" help:"Rotation around the y axis per frame in radians, zero keeps the model still."`
	SpinX float64 `default:"0" help:"Rotation around the x axis per frame in radians."`

	Seed uint64 `help:"Seed of the menu glitch, random if zero."`

	LogLevel slog.Level `default:"info" help:"Log level (debug, info, warn, error)."`
	Profile  bool       `help:"Write a cpu profile into the working directory."`
}

func main() {
	var args cli

	kctx := kong.Parse(&args,
		kong.Name("vitrine"),
		kong.Description("Shows a rotating 3D model behind a glitching menu."),
		kong.UsageOnError(),
	)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: args.LogLevel})
	slog.SetDefault(slog.New(handler))

	err := orion.RunViewer(orion.RunViewerOptions{
		Model:        args.Model,
		WindowWidth:  args.Width,
		WindowHeight: args.Height,
		WindowTitle:  args.Title,
		Menu:         args.Menu,
		Spin:         &viewport.Spin{X: args.SpinX, Y: args.SpinY},
		Seed:         args.Seed,
		Profile:      args.Profile,
	})

	kctx.FatalIfErrorf(err)
}
