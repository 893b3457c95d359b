package anim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
)

type Path uint8

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

type Interpolation uint8

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
)

// Channel animates one property of one node. Rotations are stored
// as xyzw quaternions, translation and scale use the first three
// components.
type Channel struct {
	Target        *scene.Node
	Path          Path
	Interpolation Interpolation

	Times  []float32
	Values []glm.Vec4f
}

// Clip is a named set of channels played together.
type Clip struct {
	Name     string
	Duration float32
	Channels []Channel
}

var ErrInvalidChannel = errors.New("invalid channel")

// Validate checks that every channel is well formed and fills in the
// duration if it was not set.
func (c *Clip) Validate() error {
	var duration float32

	for idx, ch := range c.Channels {
		switch {
		case ch.Target == nil:
			return fmt.Errorf("channel %d of clip %q: %w: no target", idx, c.Name, ErrInvalidChannel)

		case len(ch.Times) == 0 || len(ch.Times) != len(ch.Values):
			return fmt.Errorf("channel %d of clip %q: %w: %d times, %d values",
				idx, c.Name, ErrInvalidChannel, len(ch.Times), len(ch.Values))

		case !sort.SliceIsSorted(ch.Times, func(i, j int) bool { return ch.Times[i] < ch.Times[j] }):
			return fmt.Errorf("channel %d of clip %q: %w: times not sorted", idx, c.Name, ErrInvalidChannel)
		}

		duration = max(duration, ch.Times[len(ch.Times)-1])
	}

	if c.Duration == 0 {
		c.Duration = duration
	}

	return nil
}

// apply writes the sampled value at time t into the channels target node.
func (ch *Channel) apply(t float32) {
	value, rotation := ch.sample(t)

	switch ch.Path {
	case PathTranslation:
		ch.Target.Translation = value.Truncate()
	case PathScale:
		ch.Target.Scale = value.Truncate()
	case PathRotation:
		ch.Target.Rotation = rotation
	}
}

func (ch *Channel) sample(t float32) (glm.Vec4f, glm.Quaternionf) {
	// index of the first keyframe after t
	next := sort.Search(len(ch.Times), func(i int) bool {
		return ch.Times[i] > t
	})

	switch {
	case next == 0:
		return ch.at(0)
	case next == len(ch.Times) || ch.Interpolation == InterpolationStep:
		return ch.at(next - 1)
	}

	prev := next - 1
	t0, t1 := ch.Times[prev], ch.Times[next]

	alpha := (t - t0) / (t1 - t0)

	if ch.Path == PathRotation {
		_, a := ch.at(prev)
		_, b := ch.at(next)
		return glm.Vec4f{}, a.Slerp(b, alpha)
	}

	a, b := ch.Values[prev], ch.Values[next]
	return a.Add(b.Sub(a).MulScalar(alpha)), glm.Quaternionf{}
}

func (ch *Channel) at(idx int) (glm.Vec4f, glm.Quaternionf) {
	v := ch.Values[idx]
	if ch.Path == PathRotation {
		return v, glm.Quaternionf{V: v.Truncate(), S: v[3]}.Normalize()
	}

	return v, glm.Quaternionf{}
}
