package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AudioSystem queues sound cues for gameplay events and plays pending clips.
type AudioSystem struct {
	muted bool
}

func NewAudioSystem(muted bool) *AudioSystem {
	return &AudioSystem{muted: muted}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, t := range []ecs.EventType{ecs.EventDamaged, ecs.EventDied, ecs.EventPickedUp, ecs.EventHealed} {
		for _, evt := range w.Events().Peek(t) {
			audioComp, ok := ecs.Get(w, evt.Entity, component.AudioComponent.Kind())
			if !ok {
				continue
			}
			if clip, ok := audioComp.Cues[string(t)]; ok {
				audioComp.Queue(clip)
			}
		}
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		pending := audioComp.Pending
		audioComp.Pending = nil
		if a.muted {
			return
		}
		for _, name := range pending {
			clip := audioComp.Clips[name]
			if clip == nil || clip.Player == nil {
				continue
			}
			clip.Player.SetVolume(clip.Volume)
			_ = clip.Player.Rewind()
			clip.Player.Play()
		}
	})
}
