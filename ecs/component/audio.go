package component

import "github.com/hajimehoshi/ebiten/v2/audio"

type AudioClip struct {
	Player *audio.Player
	Volume float64
}

// Audio holds an entity's sound clips and which gameplay events trigger them.
type Audio struct {
	Clips map[string]*AudioClip
	// Cues maps an event type ("damaged", "picked_up", ...) to a clip name.
	Cues map[string]string
	// Pending clip names to start on the next audio update.
	Pending []string
}

// Queue schedules clip for playback once per update.
func (a *Audio) Queue(clip string) {
	if _, ok := a.Clips[clip]; !ok {
		return
	}
	for _, p := range a.Pending {
		if p == clip {
			return
		}
	}
	a.Pending = append(a.Pending, clip)
}

var AudioComponent = NewComponent[Audio]()
