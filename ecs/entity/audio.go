package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func buildAudioComponent(spec prefabs.AudioComponentSpec) (*component.Audio, error) {
	comp := &component.Audio{
		Clips: make(map[string]*component.AudioClip, len(spec.Clips)),
		Cues:  make(map[string]string, len(spec.Cues)),
	}

	for i, clip := range spec.Clips {
		if clip.Name == "" {
			return nil, fmt.Errorf("audio clip %d has no name", i)
		}
		player, err := loadAudioPlayer(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Clips[clip.Name] = &component.AudioClip{Player: player, Volume: volume}
	}

	for event, name := range spec.Cues {
		if _, ok := comp.Clips[name]; !ok {
			return nil, fmt.Errorf("audio cue %q: unknown clip %q", event, name)
		}
		comp.Cues[event] = name
	}

	return comp, nil
}
