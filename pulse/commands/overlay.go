package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed overlay.wgsl
var overlayShaderCode string

// quads uploaded with a single draw call
const maxOverlayQuads = 1024

const verticesPerQuad = 6

// Quad is an axis aligned rectangle in pixels. Colors are given per
// corner in the order top left, top right, bottom right, bottom left
// and use straight alpha.
type Quad struct {
	Rect   pulse.Rectangle2f
	Colors [4]glm.Vec4f
}

// SolidQuad fills rect with a single color.
func SolidQuad(rect pulse.Rectangle2f, color glm.Vec4f) Quad {
	return Quad{Rect: rect, Colors: [4]glm.Vec4f{color, color, color, color}}
}

type overlayVertex struct {
	_ structs.HostLayout

	// position relative to the target size
	Position glm.Vec2f
	Color    glm.Vec4f
}

var overlayVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(overlayVertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{
			Format:         wgpu.VertexFormatFloat32x2,
			Offset:         uint64(unsafe.Offsetof(overlayVertex{}.Position)),
			ShaderLocation: 0,
		},
		{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(unsafe.Offsetof(overlayVertex{}.Color)),
			ShaderLocation: 1,
		},
	},
}

// OverlayCommand draws flat colored quads on top of whatever the
// target already contains.
type OverlayCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[overlayPipeline]

	bufVertices *wgpu.Buffer
	vertices    []overlayVertex
}

func NewOverlayCommand(ctx *pulse.Context) (*OverlayCommand, error) {
	bufVertices, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay.Vertices",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(overlayVertex{})) * maxOverlayQuads * verticesPerQuad,
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	return &OverlayCommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[overlayPipeline](ctx, "overlay"),
		bufVertices:   bufVertices,
	}, nil
}

// DrawQuads blends quads onto target. Quads beyond what fits into the
// vertex buffer are drawn in further passes.
func (p *OverlayCommand) DrawQuads(target *pulse.Texture, blend wgpu.BlendState, quads []Quad) error {
	if len(quads) == 0 {
		return nil
	}

	pc, err := p.pipelineCache.Get(overlayPipeline{
		TargetFormat:      target.Format(),
		TargetSampleCount: target.SampleCount(),
		BlendState:        blend,
	})

	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}

	size := glm.Vec2f{float32(target.Width()), float32(target.Height())}

	for len(quads) > 0 {
		count := min(len(quads), maxOverlayQuads)

		p.vertices = appendQuadVertices(p.vertices[:0], quads[:count], size)
		if err := p.submit(target, pc); err != nil {
			return err
		}

		quads = quads[count:]
	}

	return nil
}

func appendQuadVertices(vertices []overlayVertex, quads []Quad, size glm.Vec2f) []overlayVertex {
	// corner index for each vertex of the two triangles from Triangles
	corners := [verticesPerQuad]int{0, 1, 2, 0, 2, 3}

	for _, quad := range quads {
		for idx, pos := range quad.Rect.Triangles() {
			vertices = append(vertices, overlayVertex{
				Position: pos.Div(size),
				Color:    quad.Colors[corners[idx]],
			})
		}
	}

	return vertices
}

func (p *OverlayCommand) submit(target *pulse.Texture, pc pulse.CachedPipeline) error {
	if err := p.ctx.WriteBuffer(p.bufVertices, 0, wgpu.ToBytes(p.vertices)); err != nil {
		return fmt.Errorf("update vertex buffer: %w", err)
	}

	encoder, err := p.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	defer encoder.Release()

	view, resolveTarget := target.RenderViews()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassOverlay",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveTarget,
				LoadOp:        wgpu.LoadOpLoad,
				StoreOp:       wgpu.StoreOpStore,
			},
		},
	})

	pass.SetPipeline(pc.Pipeline)
	pass.SetVertexBuffer(0, p.bufVertices, 0, wgpu.WholeSize)
	pass.Draw(uint32(len(p.vertices)), 1, 0, 0)

	err = pass.End()

	// must release pass before finishing the encoder
	pass.Release()

	if err != nil {
		return fmt.Errorf("end pass: %w", err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	return nil
}

func (p *OverlayCommand) Release() {
	p.pipelineCache.Purge()
	p.bufVertices.Release()
}

type overlayPipeline struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	BlendState        wgpu.BlendState
}

func (conf overlayPipeline) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info("Create RenderPipeline for overlay",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Overlay.Shader",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: overlayShaderCode},
	})

	if err != nil {
		return nil, fmt.Errorf("compile overlay shader: %w", err)
	}

	defer shader.Release()

	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Overlay.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{overlayVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    conf.TargetFormat,
				Blend:     &conf.BlendState,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: conf.TargetSampleCount,
			Mask:  0xFFFFFFFF,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("build overlay pipeline: %w", err)
	}

	return pipeline, nil
}
