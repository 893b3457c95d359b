package pulse

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// DepthFormat is the format of the depth buffer of a View.
const DepthFormat = wgpu.TextureFormatDepth32Float

type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// only configured if we have a multisample texture configured
	msaaTexture *Texture

	// depth texture to render to.
	// has the same sampleCount as the surface itself
	depthTexture *Texture

	sampleCount uint32

	// true if depth is enabled
	depth bool

	// true if the surface format does not encode to srgb on its own
	encodeSRGB bool
}

type ViewOptions struct {
	MSAA  bool
	Depth bool
}

func NewView(dev *Context, opts ViewOptions) *View {
	st := &View{Context: dev, depth: opts.Depth}

	if opts.MSAA {
		st.sampleCount = 4
	} else {
		st.sampleCount = 1
	}

	// Print the available render formats
	caps := dev.Surface.GetCapabilities(dev.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	// prefer a surface that encodes srgb in hardware. The browser
	// usually only offers the plain formats.
	format := wgpu.TextureFormatBGRA8Unorm
	st.encodeSRGB = true

	for _, candidate := range []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb} {
		if slices.Contains(caps.Formats, candidate) {
			format = candidate
			st.encodeSRGB = false
			break
		}
	}

	slog.Info("Use surface format",
		slog.Any("format", format),
		slog.Bool("encodeSRGB", st.encodeSRGB),
	)

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	return st
}

func (vs *View) MSAA() bool {
	return vs.sampleCount > 1
}

func (vs *View) Depth() bool {
	return vs.depth
}

// EncodeSRGB reports whether shaders must encode their output to srgb
// themselves.
func (vs *View) EncodeSRGB() bool {
	return vs.encodeSRGB
}

func (vs *View) Configured() bool {
	return vs.surfaceConfig.Width > 0 && vs.surfaceConfig.Height > 0
}

func (vs *View) DepthTexture() *Texture {
	return vs.depthTexture
}

func (vs *View) SurfaceAsTexture(screen *wgpu.Texture, screenView *wgpu.TextureView) *Texture {
	if vs.MSAA() {
		screenTexture := WrapTexture(screen, screenView, nil)

		return &Texture{
			texture:       vs.msaaTexture.texture,
			textureView:   vs.msaaTexture.textureView,
			resolveTarget: screenTexture,
			format:        vs.msaaTexture.format,
			sampleCount:   vs.sampleCount,
			size:          vs.msaaTexture.size,
			wrapped:       true,
		}
	} else {
		return WrapTexture(
			screen,
			screenView,
			nil,
		)
	}
}

func (vs *View) ReleaseTexture() {
	if vs.depthTexture != nil {
		vs.depthTexture.Release()
		vs.depthTexture = nil
	}

	if vs.msaaTexture != nil {
		vs.msaaTexture.Release()
		vs.msaaTexture = nil
	}
}

func (vs *View) Release() {
	vs.ReleaseTexture()
}

func (vs *View) Configure(width, height uint32) error {
	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Device, vs.surfaceConfig)

	// release depth depth texture
	vs.ReleaseTexture()

	var err error

	// create depth texture
	if vs.depth {
		vs.depthTexture, err = createDepthTexture(vs.Context, width, height, vs.sampleCount)
		if err != nil {
			return fmt.Errorf("create depth texture: %w", err)
		}
	}

	if vs.MSAA() {
		// create msaa render target texture
		vs.msaaTexture, err = createMultisampleTexture(vs.Context, vs.surfaceConfig, vs.sampleCount)
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
	}

	return nil
}

func createMultisampleTexture(ctx *Context, surfaceConfig *wgpu.SurfaceConfiguration, sampleCount uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label: "MultisampleRenderTarget",
		Usage: wgpu.TextureUsageRenderAttachment,
		Size: wgpu.Extent3D{
			Width:              surfaceConfig.Width,
			Height:             surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        surfaceConfig.Format,
		Dimension:     wgpu.TextureDimension2D,
		SampleCount:   sampleCount,
		MipLevelCount: 1,
	})
}

func createDepthTexture(ctx *Context, width, height, sampleCount uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label:     "DepthTexture",
		Usage:     wgpu.TextureUsageRenderAttachment,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        DepthFormat,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
	})
}
