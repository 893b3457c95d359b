package asset

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/vitrine/anim"
	"github.com/oliverbestmann/vitrine/glm"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// clip converts a gltf animation. Channels targeting morph weights or
// nodes outside of the converted scene are skipped. It returns nil
// if no channel is left.
func (c *converter) clip(ga *gltf.Animation) (*anim.Clip, error) {
	clip := &anim.Clip{Name: ga.Name}

	for idx, gc := range ga.Channels {
		if gc.Target.Node == nil {
			continue
		}

		target, ok := c.nodes[*gc.Target.Node]
		if !ok {
			continue
		}

		var path anim.Path
		switch gc.Target.Path {
		case gltf.TRSTranslation:
			path = anim.PathTranslation
		case gltf.TRSRotation:
			path = anim.PathRotation
		case gltf.TRSScale:
			path = anim.PathScale
		default:
			slog.Debug("Skip animation channel",
				slog.String("animation", ga.Name),
				slog.Int("channel", idx),
			)

			continue
		}

		if gc.Sampler < 0 || gc.Sampler >= len(ga.Samplers) {
			return nil, fmt.Errorf("channel %d: sampler %d out of range", idx, gc.Sampler)
		}

		channel, err := c.channel(ga.Samplers[gc.Sampler], path)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", idx, err)
		}

		channel.Target = target
		clip.Channels = append(clip.Channels, channel)
	}

	if len(clip.Channels) == 0 {
		return nil, nil
	}

	if err := clip.Validate(); err != nil {
		return nil, err
	}

	return clip, nil
}

func (c *converter) channel(sampler *gltf.AnimationSampler, path anim.Path) (anim.Channel, error) {
	input, err := modeler.ReadAccessor(c.doc, c.doc.Accessors[sampler.Input], nil)
	if err != nil {
		return anim.Channel{}, fmt.Errorf("read input: %w", err)
	}

	times, ok := input.([]float32)
	if !ok {
		return anim.Channel{}, fmt.Errorf("input has type %T", input)
	}

	output, err := modeler.ReadAccessor(c.doc, c.doc.Accessors[sampler.Output], nil)
	if err != nil {
		return anim.Channel{}, fmt.Errorf("read output: %w", err)
	}

	var values []glm.Vec4f
	switch output := output.(type) {
	case [][3]float32:
		for _, v := range output {
			values = append(values, glm.Vec4f{v[0], v[1], v[2], 0})
		}

	case [][4]float32:
		for _, v := range output {
			values = append(values, glm.Vec4f(v))
		}

	default:
		return anim.Channel{}, fmt.Errorf("output has type %T", output)
	}

	channel := anim.Channel{Path: path, Times: times}

	switch sampler.Interpolation {
	case gltf.InterpolationStep:
		channel.Interpolation = anim.InterpolationStep

	case gltf.InterpolationCubicSpline:
		// keep the keyframe values, drop the tangents
		var keyframes []glm.Vec4f
		for idx := 1; idx < len(values); idx += 3 {
			keyframes = append(keyframes, values[idx])
		}

		values = keyframes
	}

	channel.Values = values

	return channel, nil
}
