package pulse

import (
	"fmt"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
// For multisample textures a Texture also holds the resolve target
// texture.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	resolveTarget *Texture

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	// equal to texture.GetSampleCount()
	sampleCount uint32

	size glm.Vec2u

	// true if the texture is owned by someone else, e.g. the surface
	wrapped bool
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	var resolveTarget *Texture

	if desc.SampleCount > 1 {
		// create resolve target texture
		descResolve := *desc
		descResolve.SampleCount = 1

		resolveTarget, err = NewTextureFromDesc(ctx, &descResolve)
		if err != nil {
			textureView.Release()
			texture.Release()

			return nil, fmt.Errorf("create resolveTarget texture: %w", err)
		}
	}

	t := &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,

		format:      desc.Format,
		sampleCount: desc.SampleCount,
		size:        glm.Vec2u{desc.Size.Width, desc.Size.Height},
	}

	return t, nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView. If it is a
// multisample texture, you also need to specify a resolve target. Release on a wrapped texture
// does nothing.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView, resolveTarget *Texture) *Texture {
	if texture.GetSampleCount() > 1 && resolveTarget == nil {
		panic("no resolveTarget specified for multisample texture")
	}

	if texture.GetSampleCount() == 1 && resolveTarget != nil {
		panic("resolveTarget specified for multisample texture")
	}

	return &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,
		format:        texture.GetFormat(),
		sampleCount:   texture.GetSampleCount(),
		size:          glm.Vec2u{texture.GetWidth(), texture.GetHeight()},
		wrapped:       true,
	}
}

func (t *Texture) Width() uint32 {
	return t.size[0]
}

func (t *Texture) Height() uint32 {
	return t.size[1]
}

func (t *Texture) Size() glm.Vec2u {
	return t.size
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) SampleCount() uint32 {
	return t.sampleCount
}

func (t *Texture) ResolveTarget() *Texture {
	return t.resolveTarget
}

// Release releases the texture view and the texture. You must be sure to
// not use the texture after calling release.
func (t *Texture) Release() {
	if t.wrapped {
		return
	}

	if t.resolveTarget != nil {
		t.resolveTarget.Release()
	}

	t.textureView.Release()
	t.texture.Release()
}

// RenderViews returns the views to use as color attachment.
func (t *Texture) RenderViews() (view, resolveView *wgpu.TextureView) {
	view = t.textureView

	if t.sampleCount > 1 {
		resolveView = t.resolveTarget.textureView
	}

	return
}
