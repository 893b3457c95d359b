package anim

import "math"

// Mixer advances the actions of one model.
type Mixer struct {
	actions []*Action
}

func NewMixer() *Mixer {
	return &Mixer{}
}

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	for _, action := range m.actions {
		if action.clip == clip {
			return action
		}
	}

	action := &Action{clip: clip, Loop: true, TimeScale: 1}
	m.actions = append(m.actions, action)

	return action
}

// Update advances every playing action by delta seconds and
// applies them to their target nodes.
func (m *Mixer) Update(delta float64) {
	for _, action := range m.actions {
		action.advance(delta)
	}
}

// Action is the playback state of one clip.
type Action struct {
	clip *Clip

	Loop      bool
	TimeScale float64

	time    float64
	playing bool
}

func (a *Action) Clip() *Clip {
	return a.clip
}

func (a *Action) Play() *Action {
	a.playing = true
	return a
}

// Stop halts the action and rewinds it.
func (a *Action) Stop() {
	a.playing = false
	a.time = 0
}

func (a *Action) IsRunning() bool {
	return a.playing
}

// Time returns the current position inside the clip in seconds.
func (a *Action) Time() float64 {
	return a.time
}

func (a *Action) advance(delta float64) {
	if !a.playing {
		return
	}

	duration := float64(a.clip.Duration)

	a.time += delta * a.TimeScale

	switch {
	case duration <= 0:
		a.time = 0

	case a.Loop:
		a.time = math.Mod(a.time, duration)
		if a.time < 0 {
			a.time += duration
		}

	case a.time >= duration:
		// clamp at the last frame
		a.time = duration
		a.playing = false
	}

	for idx := range a.clip.Channels {
		a.clip.Channels[idx].apply(float32(a.time))
	}
}
