// Package viewer starts and stops the chains of a single viewport and
// routes model load results into it.
package viewer

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/oliverbestmann/vitrine/anim"
	"github.com/oliverbestmann/vitrine/asset"
	"github.com/oliverbestmann/vitrine/glitch"
	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/vitrine/viewport"
)

// Placement is applied to the root node of a loaded model.
type Placement struct {
	Scale    float32
	Position glm.Vec3f
}

var DefaultPlacement = Placement{
	Scale:    1.5,
	Position: glm.Vec3f{0, -0.5, 0},
}

type Options struct {
	// per frame rotation, nil uses viewport.DefaultSpin. A zero Spin
	// keeps the model still.
	Spin      *viewport.Spin
	Placement Placement

	// random source of the glitch scheduler. A nil value uses a
	// randomly seeded source.
	Rand *rand.Rand
}

// Session owns the frame chain and the glitch chain of one viewport.
// All methods must be called on the host thread.
type Session struct {
	ctx  *viewport.Context
	opts Options

	Driver *viewport.Driver
	Resize *viewport.ResizeReactor
	Glitch *glitch.Scheduler

	frames   *tick.Task
	glitches *tick.Task

	mixer *anim.Mixer
}

// Start validates ctx, applies the current container size and starts
// both chains on host. The first glitch highlight is applied before
// Start returns.
func Start(host tick.Host, ctx *viewport.Context, menu glitch.Highlighter, opts Options) (*Session, error) {
	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("start viewer: %w", err)
	}

	spin := viewport.DefaultSpin
	if opts.Spin != nil {
		spin = *opts.Spin
	}

	if opts.Placement == (Placement{}) {
		opts.Placement = DefaultPlacement
	}

	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		ctx:    ctx,
		opts:   opts,
		Driver: viewport.NewDriver(ctx, spin),
		Resize: viewport.NewResizeReactor(ctx),
		Glitch: glitch.NewScheduler(menu, opts.Rand),
	}

	s.Resize.Resize()

	s.frames = s.Driver.Start(host)
	s.glitches = s.Glitch.Start(host)

	return s, nil
}

// Frames is the task running the frame chain.
func (s *Session) Frames() *tick.Task {
	return s.frames
}

// Glitches is the task running the glitch chain.
func (s *Session) Glitches() *tick.Task {
	return s.glitches
}

// Loader returns a loader that reports back into this session.
func (s *Session) Loader(client *http.Client) *asset.Loader {
	return &asset.Loader{
		Client:     client,
		OnProgress: s.ModelProgress,
		OnLoad:     s.ModelLoaded,
		OnError:    s.ModelFailed,
	}
}

// ShowMesh places mesh as the rotating model, used when no model
// source is configured.
func (s *Session) ShowMesh(mesh *scene.Mesh) {
	node := scene.NewNode(mesh.Name)
	node.Mesh = mesh

	s.place(node)
	s.Driver.SetModel(node, nil)
}

// ModelLoaded places the model and plays its first clip, if any.
func (s *Session) ModelLoaded(model *asset.Model) {
	s.place(model.Root)

	var playback viewport.Playback

	if len(model.Clips) > 0 {
		clip := model.Clips[0]

		s.mixer = anim.NewMixer()
		s.mixer.ClipAction(clip).Play()
		playback = s.mixer

		slog.Info("Play animation",
			slog.String("clip", clip.Name),
			slog.Int("clips", len(model.Clips)),
		)
	}

	s.Driver.SetModel(model.Root, playback)
}

// ModelFailed logs err. The viewport keeps rendering without a model.
func (s *Session) ModelFailed(err error) {
	slog.Error("Failed to load model", slog.Any("err", err))
}

func (s *Session) ModelProgress(fraction float64) {
	slog.Info("Loading", slog.Float64("percent", fraction*100))
}

// Stop cancels both chains. It is safe to call more than once.
func (s *Session) Stop() {
	s.frames.Stop()
	s.glitches.Stop()
}

func (s *Session) place(node *scene.Node) {
	p := s.opts.Placement

	node.Scale = glm.Vec3f{p.Scale, p.Scale, p.Scale}
	node.Translation = p.Position
}
