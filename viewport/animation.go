package viewport

// Playback advances clip animation by a time delta in seconds.
type Playback interface {
	Update(delta float64)
}

// AnimationState holds at most one active playback.
type AnimationState struct {
	playback Playback
}

func (a *AnimationState) Set(playback Playback) {
	a.playback = playback
}

func (a *AnimationState) Active() bool {
	return a.playback != nil
}

func (a *AnimationState) Update(delta float64) {
	if a.playback != nil {
		a.playback.Update(delta)
	}
}
