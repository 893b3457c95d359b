package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/pulse"
	"github.com/oliverbestmann/vitrine/pulse/lighting"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed mesh3d.wgsl
var mesh3dShaderCode string

type gpuMesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

func (m *gpuMesh) Release() {
	m.vertices.Release()
	m.indices.Release()
}

// objectSlot holds the uniform buffer of one draw call. Slots are reused
// by draw order from frame to frame.
type objectSlot struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup

	// pipeline the bind group was created for
	pipeline *wgpu.RenderPipeline
}

func (s *objectSlot) releaseBindGroup() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.bindGroup = nil
	}
}

type drawItem struct {
	mesh  *scene.Mesh
	world glm.Mat4f
}

type Mesh3dCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[mesh3dRenderPipeline]

	bufFrame *wgpu.Buffer
	frame    objectSlot

	meshes  map[*scene.Mesh]*gpuMesh
	objects []*objectSlot

	items []drawItem
}

func NewMesh3dCommand(ctx *pulse.Context) (*Mesh3dCommand, error) {
	bufFrame, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Mesh3d.Frame",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(lighting.Frame{})),
	})

	if err != nil {
		return nil, fmt.Errorf("create frame uniform buffer: %w", err)
	}

	p := &Mesh3dCommand{
		ctx:      ctx,
		bufFrame: bufFrame,
		frame:    objectSlot{buffer: bufFrame},
		meshes:   map[*scene.Mesh]*gpuMesh{},
	}

	p.pipelineCache = pulse.NewPipelineCache[mesh3dRenderPipeline](ctx, "mesh3d")

	return p, nil
}

type DrawSceneOptions struct {
	Scene  *scene.Scene
	Camera *scene.PerspectiveCamera

	// encode the output color to srgb in the shader
	EncodeSRGB bool
}

// DrawScene clears target and depth and renders every mesh of the scene.
func (p *Mesh3dCommand) DrawScene(target, depth *pulse.Texture, opts DrawSceneOptions) error {
	defer p.reset()

	opts.Scene.Root.Walk(func(node *scene.Node, world glm.Mat4f) {
		if node.Mesh != nil && len(node.Mesh.Indices) > 0 {
			p.items = append(p.items, drawItem{mesh: node.Mesh, world: world})
		}
	})

	pc, err := p.pipelineCache.Get(mesh3dRenderPipeline{
		TargetFormat:      target.Format(),
		TargetSampleCount: target.SampleCount(),
		DepthFormat:       depth.Format(),
		ShaderSource:      mesh3dShaderCode,
	})

	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}

	frame := lighting.PackFrame(opts.Scene, opts.Camera, opts.EncodeSRGB)
	if err := pulse.WriteValue(p.ctx, p.bufFrame, &frame); err != nil {
		return fmt.Errorf("update frame buffer: %w", err)
	}

	if err := p.bind(&p.frame, pc, 0); err != nil {
		return fmt.Errorf("bind frame uniforms: %w", err)
	}

	for idx, item := range p.items {
		slot, err := p.object(idx)
		if err != nil {
			return err
		}

		object := lighting.PackObject(item.world, item.mesh.Material)
		if err := pulse.WriteValue(p.ctx, slot.buffer, &object); err != nil {
			return fmt.Errorf("update object buffer: %w", err)
		}

		if err := p.bind(slot, pc, 1); err != nil {
			return fmt.Errorf("bind object uniforms: %w", err)
		}

		if _, err := p.upload(item.mesh); err != nil {
			return fmt.Errorf("upload mesh %q: %w", item.mesh.Name, err)
		}
	}

	encoder, err := p.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	view, resolveTarget := target.RenderViews()
	depthView, _ := depth.RenderViews()

	background := pulse.ColorLinearRGBA(
		opts.Scene.Background[0],
		opts.Scene.Background[1],
		opts.Scene.Background[2],
		1,
	)

	clearValue := background.ToWGPU()
	if opts.EncodeSRGB {
		clearValue = background.ToSRGB().ToWGPU()
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassMesh3d",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveTarget,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    clearValue,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	pass.SetPipeline(pc.Pipeline)
	pass.SetBindGroup(0, p.frame.bindGroup, nil)

	for idx, item := range p.items {
		mesh := p.meshes[item.mesh]

		pass.SetBindGroup(1, p.objects[idx].bindGroup, nil)
		pass.SetVertexBuffer(0, mesh.vertices, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}

	if err := pass.End(); err != nil {
		return err
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	return nil
}

// bind makes sure the slot has a bind group matching the current pipeline.
func (p *Mesh3dCommand) bind(slot *objectSlot, pc pulse.CachedPipeline, group uint32) error {
	if slot.bindGroup != nil && slot.pipeline == pc.Pipeline {
		return nil
	}

	slot.releaseBindGroup()

	bindGroup, err := p.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("Mesh3d.BindGroup%d", group),
		Layout: pc.GetBindGroupLayout(group),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  slot.buffer,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return err
	}

	slot.bindGroup = bindGroup
	slot.pipeline = pc.Pipeline

	return nil
}

func (p *Mesh3dCommand) object(idx int) (*objectSlot, error) {
	for len(p.objects) <= idx {
		buffer, err := p.ctx.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Mesh3d.Object%d", len(p.objects)),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			Size:  uint64(unsafe.Sizeof(lighting.Object{})),
		})

		if err != nil {
			return nil, fmt.Errorf("create object uniform buffer: %w", err)
		}

		p.objects = append(p.objects, &objectSlot{buffer: buffer})
	}

	return p.objects[idx], nil
}

func (p *Mesh3dCommand) upload(mesh *scene.Mesh) (*gpuMesh, error) {
	if cached, ok := p.meshes[mesh]; ok {
		return cached, nil
	}

	slog.Info("Upload mesh",
		slog.String("name", mesh.Name),
		slog.Int("vertices", len(mesh.Vertices)),
		slog.Int("indices", len(mesh.Indices)),
	)

	vertices, err := p.ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh3d.Vertices." + mesh.Name,
		Usage:    wgpu.BufferUsageVertex,
		Contents: wgpu.ToBytes(mesh.Vertices),
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	indices, err := p.ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh3d.Indices." + mesh.Name,
		Usage:    wgpu.BufferUsageIndex,
		Contents: wgpu.ToBytes(mesh.Indices),
	})

	if err != nil {
		vertices.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	gm := &gpuMesh{
		vertices:   vertices,
		indices:    indices,
		indexCount: uint32(len(mesh.Indices)),
	}

	p.meshes[mesh] = gm

	return gm, nil
}

// Forget releases the gpu buffers of meshes that are not part of keep.
func (p *Mesh3dCommand) Forget(keep *scene.Scene) {
	live := map[*scene.Mesh]bool{}
	keep.Root.Walk(func(node *scene.Node, _ glm.Mat4f) {
		if node.Mesh != nil {
			live[node.Mesh] = true
		}
	})

	for mesh, gm := range p.meshes {
		if !live[mesh] {
			gm.Release()
			delete(p.meshes, mesh)
		}
	}
}

func (p *Mesh3dCommand) Release() {
	for mesh, gm := range p.meshes {
		gm.Release()
		delete(p.meshes, mesh)
	}

	for _, slot := range p.objects {
		slot.releaseBindGroup()
		slot.buffer.Release()
	}

	p.objects = nil

	p.frame.releaseBindGroup()
	p.bufFrame.Release()

	p.pipelineCache.Purge()
}

type mesh3dRenderPipeline struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	DepthFormat       wgpu.TextureFormat
	ShaderSource      string
}

func (conf mesh3dRenderPipeline) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for mesh3d",
		slog.Any("config", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Mesh3D.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: conf.ShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh3d shader: %w", err)
	}

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Mesh3D.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(scene.Vertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(scene.Vertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// normal
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(scene.Vertex{}.Normal)),
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depthState(conf.DepthFormat),
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build mesh3d pipeline: %w", err)
	}

	return pipeline, nil
}

// depthState keeps the nearest fragment and writes its depth.
func depthState(format wgpu.TextureFormat) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: wgpu.OptionalBoolTrue,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

func (p *Mesh3dCommand) reset() {
	clear(p.items)
	p.items = p.items[:0]
}
