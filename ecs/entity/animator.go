package entity

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var ErrNoAnimator = errors.New("entity: prefab has no sprite_animator")

// NewAnimationController builds a controller from a sprite_animator spec. Clip
// modes must parse and a named default must be one of the spec's clips. An
// unknown current clip is logged and the default plays instead.
func NewAnimationController(spec prefabs.SpriteAnimatorComponentSpec) (*anim.Controller, error) {
	c := anim.NewController()
	if spec.FPS > 0 {
		c.WithFPS(spec.FPS)
	}

	names := make([]string, 0, len(spec.Clips))
	for name := range spec.Clips {
		names = append(names, name)
	}
	sort.Strings(names)

	clips := make(map[string]*anim.Clip, len(names))
	for _, name := range names {
		clip, err := newClip(name, spec.Clips[name])
		if err != nil {
			return nil, err
		}
		clips[name] = clip
		c.WithClip(clip)
	}

	if spec.Default != nil {
		switch {
		case spec.Default.Clip != nil:
			clip, err := newClip(anim.DefaultName, *spec.Default.Clip)
			if err != nil {
				return nil, err
			}
			c.WithDefault(clip)
		case spec.Default.Name != "":
			clip, ok := clips[spec.Default.Name]
			if !ok {
				return nil, fmt.Errorf("default clip %q: %w", spec.Default.Name, anim.ErrDoesNotExist)
			}
			c.WithDefault(clip)
		}
	}

	current := spec.Current
	if current == "" {
		current = anim.DefaultName
	}
	if err := c.SetCurrent(current); err != nil {
		log.Printf("animation: %v", err)
	}
	return c, nil
}

func newClip(name string, spec prefabs.ClipSpec) (*anim.Clip, error) {
	mode, err := anim.ParseMode(spec.Mode)
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", name, err)
	}
	for _, f := range spec.Frames {
		if f < 0 {
			return nil, fmt.Errorf("clip %q: negative frame %d", name, f)
		}
	}
	return anim.NewClip(name, spec.Frames).WithMode(mode), nil
}

// NewTextureAtlas loads the sheet of a sprite_animator spec.
func NewTextureAtlas(spec prefabs.SpriteAnimatorComponentSpec) (*component.TextureAtlas, error) {
	if spec.FrameW <= 0 || spec.FrameH <= 0 {
		return nil, fmt.Errorf("frame size %dx%d must be positive", spec.FrameW, spec.FrameH)
	}
	atlas := &component.TextureAtlas{
		FrameW:  spec.FrameW,
		FrameH:  spec.FrameH,
		Columns: spec.Columns,
	}
	if spec.Sheet == "" {
		return atlas, nil
	}
	sheet, err := loadImage(spec.Sheet)
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", spec.Sheet, err)
	}
	atlas.Sheet = sheet
	if atlas.Columns <= 0 && sheet != nil {
		atlas.Columns = sheet.Bounds().Dx() / spec.FrameW
	}
	return atlas, nil
}

// showFirstFrame points the atlas at the current clip's first frame so the
// sprite is not blank until the first tick.
func showFirstFrame(atlas *component.TextureAtlas, c *anim.Controller) {
	if frames := c.Current().Frames(); len(frames) > 0 {
		atlas.SetFrameIndex(frames[0])
	}
}

// ReloadPrefabAnimators rebuilds the clip collection of every animator built
// from prefab. The playing clip name is kept when the new spec still has it.
// It returns the number of animators rebuilt.
func ReloadPrefabAnimators(w *ecs.World, prefab string) (int, error) {
	if w == nil {
		return 0, nil
	}
	name := prefabs.RelativeName(prefab)

	var targets []ecs.Entity
	ecs.ForEach(w, component.SpriteAnimatorComponent.Kind(), func(e ecs.Entity, a *component.SpriteAnimator) {
		if a.Prefab == name {
			targets = append(targets, e)
		}
	})
	if len(targets) == 0 {
		return 0, nil
	}

	buildSpec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return 0, fmt.Errorf("reload %q: %w", name, err)
	}
	raw, ok := buildSpec.Components["sprite_animator"]
	if !ok {
		return 0, fmt.Errorf("reload %q: %w", name, ErrNoAnimator)
	}
	spec, err := prefabs.DecodeComponentSpec[spriteAnimatorSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("reload %q: decode sprite animator spec: %w", name, err)
	}

	for _, e := range targets {
		if err := RebuildAnimator(w, e, spec); err != nil {
			return 0, fmt.Errorf("reload %q: entity %s: %w", name, e, err)
		}
	}
	return len(targets), nil
}

// RebuildAnimator replaces the controller and atlas of e with ones built from
// spec.
func RebuildAnimator(w *ecs.World, e ecs.Entity, spec prefabs.SpriteAnimatorComponentSpec) error {
	animator, ok := ecs.Get(w, e, component.SpriteAnimatorComponent.Kind())
	if !ok {
		return ErrNoAnimator
	}
	controller, err := NewAnimationController(spec)
	if err != nil {
		return err
	}
	atlas, err := NewTextureAtlas(spec)
	if err != nil {
		return err
	}

	if animator.Controller != nil {
		if playing := animator.Controller.CurrentName(); controller.Has(playing) {
			_ = controller.SetCurrent(playing)
		}
	}
	showFirstFrame(atlas, controller)

	animator.Controller = controller
	animator.Stalled = false
	if err := ecs.Add(w, e, component.TextureAtlasComponent.Kind(), atlas); err != nil {
		return err
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Image = atlas.Sheet
		sprite.UseSource = true
		sprite.Source = atlas.Rect()
	}
	if script, ok := ecs.Get(w, e, component.AnimationScriptComponent.Kind()); ok {
		script.Missing = nil
	}
	return nil
}
