package pulse

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// number of pipelines kept per cache
const pipelineCacheSize = 16

// CachedPipeline is a render pipeline together with the bind group
// layouts derived from its auto layout.
type CachedPipeline struct {
	Pipeline *wgpu.RenderPipeline
	layouts  *lru.Cache[uint32, *wgpu.BindGroupLayout]
}

func (pc *CachedPipeline) GetBindGroupLayout(group uint32) *wgpu.BindGroupLayout {
	if layout, ok := pc.layouts.Get(group); ok {
		return layout
	}

	layout := pc.Pipeline.GetBindGroupLayout(group)
	pc.layouts.Add(group, layout)

	return layout
}

func (pc *CachedPipeline) release() {
	pc.layouts.Purge()
	pc.Pipeline.Release()
}

type PipelineConfig interface {
	comparable

	// Specialize creates a specialized pipeline for the
	// current PipelineConfig
	Specialize(def *wgpu.Device) (*wgpu.RenderPipeline, error)
}

// PipelineCache builds one pipeline per distinct config on demand and
// releases the least recently used one once it is full.
type PipelineCache[C PipelineConfig] struct {
	name   string
	device *wgpu.Device
	cache  *lru.Cache[C, CachedPipeline]
}

func NewPipelineCache[C PipelineConfig](ctx *Context, name string) *PipelineCache[C] {
	onEvict := func(_ C, pc CachedPipeline) {
		slog.Debug("Release pipeline", slog.String("cache", name))
		pc.release()
	}

	// only fails for a non positive size
	cache, _ := lru.NewWithEvict[C, CachedPipeline](pipelineCacheSize, onEvict)

	return &PipelineCache[C]{
		name:   name,
		device: ctx.Device,
		cache:  cache,
	}
}

func (p *PipelineCache[C]) Get(conf C) (CachedPipeline, error) {
	if cached, ok := p.cache.Get(conf); ok {
		return cached, nil
	}

	pipeline, err := conf.Specialize(p.device)
	if err != nil {
		return CachedPipeline{}, fmt.Errorf("build %s pipeline: %w", p.name, err)
	}

	layouts, _ := lru.NewWithEvict[uint32, *wgpu.BindGroupLayout](4, func(_ uint32, layout *wgpu.BindGroupLayout) {
		layout.Release()
	})

	pc := CachedPipeline{Pipeline: pipeline, layouts: layouts}
	p.cache.Add(conf, pc)

	return pc, nil
}

// Len returns the number of pipelines currently cached.
func (p *PipelineCache[C]) Len() int {
	return p.cache.Len()
}

// Purge releases all cached pipelines.
func (p *PipelineCache[C]) Purge() {
	p.cache.Purge()
}
