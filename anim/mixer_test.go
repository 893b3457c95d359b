package anim

import (
	"math"
	"testing"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/stretchr/testify/require"
)

func bounceClip(node *scene.Node) *Clip {
	return &Clip{
		Name: "Bounce",
		Channels: []Channel{
			{
				Target: node,
				Path:   PathTranslation,
				Times:  []float32{0, 1, 2},
				Values: []glm.Vec4f{{0, 0, 0}, {0, 2, 0}, {0, 0, 0}},
			},
		},
	}
}

func TestValidateComputesDuration(t *testing.T) {
	clip := bounceClip(scene.NewNode("n"))
	require.NoError(t, clip.Validate())
	require.Equal(t, float32(2), clip.Duration)
}

func TestValidateRejectsBrokenChannels(t *testing.T) {
	clip := &Clip{Name: "broken", Channels: []Channel{{Target: scene.NewNode("n"), Times: []float32{0, 1}}}}
	require.ErrorIs(t, clip.Validate(), ErrInvalidChannel)

	clip = &Clip{Name: "unsorted", Channels: []Channel{{
		Target: scene.NewNode("n"),
		Times:  []float32{1, 0},
		Values: make([]glm.Vec4f, 2),
	}}}
	require.ErrorIs(t, clip.Validate(), ErrInvalidChannel)

	clip = &Clip{Name: "orphan", Channels: []Channel{{Times: []float32{0}, Values: make([]glm.Vec4f, 1)}}}
	require.ErrorIs(t, clip.Validate(), ErrInvalidChannel)
}

func TestMixerInterpolatesLinearly(t *testing.T) {
	node := scene.NewNode("n")
	clip := bounceClip(node)
	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	mixer.ClipAction(clip).Play()

	mixer.Update(0.5)
	require.InDelta(t, 1.0, node.Translation[1], 1e-6)

	mixer.Update(1.0)
	require.InDelta(t, 1.0, node.Translation[1], 1e-6)
}

func TestMixerLoops(t *testing.T) {
	node := scene.NewNode("n")
	clip := bounceClip(node)
	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	action := mixer.ClipAction(clip).Play()

	mixer.Update(2.5)
	require.InDelta(t, 0.5, action.Time(), 1e-9)
	require.InDelta(t, 1.0, node.Translation[1], 1e-6)
	require.True(t, action.IsRunning())
}

func TestMixerClampsWithoutLoop(t *testing.T) {
	node := scene.NewNode("n")
	clip := bounceClip(node)
	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	action := mixer.ClipAction(clip)
	action.Loop = false
	action.Play()

	mixer.Update(5)
	require.False(t, action.IsRunning())
	require.Equal(t, 2.0, action.Time())
}

func TestMixerIgnoresStoppedActions(t *testing.T) {
	node := scene.NewNode("n")
	clip := bounceClip(node)
	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	action := mixer.ClipAction(clip)

	mixer.Update(0.5)
	require.Equal(t, glm.Vec3f{}, node.Translation)
	require.Same(t, action, mixer.ClipAction(clip))
}

func TestRotationChannelSlerps(t *testing.T) {
	node := scene.NewNode("n")

	half := float32(math.Sqrt2 / 2)
	clip := &Clip{
		Name: "Turn",
		Channels: []Channel{{
			Target: node,
			Path:   PathRotation,
			Times:  []float32{0, 1},
			Values: []glm.Vec4f{{0, 0, 0, 1}, {0, half, 0, half}},
		}},
	}

	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	mixer.ClipAction(clip).Play()
	mixer.Update(0.5)

	expected := glm.QuaternionFromAxisAngle(glm.Vec3f{0, 1, 0}, math.Pi/4)
	require.InDelta(t, expected.S, node.Rotation.S, 1e-5)
	require.InDelta(t, expected.V[1], node.Rotation.V[1], 1e-5)
}

func TestStepInterpolation(t *testing.T) {
	node := scene.NewNode("n")
	clip := bounceClip(node)
	clip.Channels[0].Interpolation = InterpolationStep
	require.NoError(t, clip.Validate())

	mixer := NewMixer()
	mixer.ClipAction(clip).Play()

	mixer.Update(0.9)
	require.Equal(t, float32(0), node.Translation[1])

	mixer.Update(0.2)
	require.Equal(t, float32(2), node.Translation[1])
}
