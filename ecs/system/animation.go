package system

import (
	"errors"
	"log"
	"math"

	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// facingThreshold is the horizontal speed below which facing is left unchanged.
const facingThreshold = 5.0

// AnimationSystem ticks every animator with the world delta and writes the
// resulting frame into the entity's texture atlas and sprite.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	delta := w.Delta()

	ecs.ForEach2(w, component.SpriteAnimatorComponent.Kind(), component.TextureAtlasComponent.Kind(), func(e ecs.Entity, animator *component.SpriteAnimator, atlas *component.TextureAtlas) {
		if animator.Controller == nil {
			return
		}
		if err := animator.Controller.Tick(delta, atlas); err != nil {
			if errors.Is(err, anim.ErrNoFrames) {
				if !animator.Stalled {
					log.Printf("animation: entity %s clip %q: %v", e, animator.Controller.CurrentName(), err)
				}
				animator.Stalled = true
			} else {
				log.Printf("animation: entity %s: %v", e, err)
			}
		}

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return
		}
		if atlas.Sheet != nil {
			sprite.Image = atlas.Sheet
			sprite.Source = atlas.Rect()
			sprite.UseSource = true
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			vx := body.Body.Velocity().X
			if math.Abs(vx) > facingThreshold {
				sprite.FacingLeft = vx < 0
			}
		}
	})
}
