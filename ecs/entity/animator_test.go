package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func TestNewAnimationController(t *testing.T) {
	spec := prefabs.SpriteAnimatorComponentSpec{
		FPS:     10,
		Default: &prefabs.DefaultClipSpec{Name: "Idle"},
		Clips: map[string]prefabs.ClipSpec{
			"Idle": {Frames: []int{0, 1}, Mode: "mirror"},
			"Run":  {Frames: []int{4, 5, 6}},
		},
	}
	c, err := NewAnimationController(spec)
	if err != nil {
		t.Fatal(err)
	}
	if c.Interval().Milliseconds() != 100 {
		t.Fatalf("expected 100ms interval, got %v", c.Interval())
	}
	if c.CurrentName() != anim.DefaultName {
		t.Fatalf("expected Default with no current, got %q", c.CurrentName())
	}
	if c.Current().Mode() != anim.Mirror {
		t.Fatalf("expected the default to be a copy of Idle, got mode %s", c.Current().Mode())
	}
	if err := c.SetCurrent("Run"); err != nil {
		t.Fatal(err)
	}
	if c.Current().Mode() != anim.Repeating {
		t.Fatalf("expected an empty mode to mean repeating, got %s", c.Current().Mode())
	}
}

func TestRebuildAnimatorKeepsClip(t *testing.T) {
	stubLoaders(t)
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player.yaml")
	if err != nil {
		t.Fatal(err)
	}
	animator, _ := ecs.Get(w, e, component.SpriteAnimatorComponent.Kind())
	if _, err := animator.Play("Run"); err != nil {
		t.Fatal(err)
	}
	animator.Stalled = true
	script, _ := ecs.Get(w, e, component.AnimationScriptComponent.Kind())
	script.Missing = map[string]bool{"Crouch": true}

	spec := prefabs.SpriteAnimatorComponentSpec{
		FrameW: 50, FrameH: 37, Columns: 7,
		Clips: map[string]prefabs.ClipSpec{
			"Idle": {Frames: []int{0}},
			"Run":  {Frames: []int{20, 21}},
		},
	}
	if err := RebuildAnimator(w, e, spec); err != nil {
		t.Fatal(err)
	}
	if animator.Controller.CurrentName() != "Run" {
		t.Fatalf("expected Run to keep playing, got %q", animator.Controller.CurrentName())
	}
	if animator.Stalled || script.Missing != nil {
		t.Fatalf("expected stall and missing clips to reset")
	}
	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	if atlas.Index != 20 {
		t.Fatalf("expected the new Run frames, got index %d", atlas.Index)
	}

	delete(spec.Clips, "Run")
	if err := RebuildAnimator(w, e, spec); err != nil {
		t.Fatal(err)
	}
	if animator.Controller.CurrentName() != anim.DefaultName {
		t.Fatalf("expected Default once Run is gone, got %q", animator.Controller.CurrentName())
	}
}

func TestRebuildAnimatorWithoutAnimator(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	if err := RebuildAnimator(w, e, prefabs.SpriteAnimatorComponentSpec{FrameW: 1, FrameH: 1}); err != ErrNoAnimator {
		t.Fatalf("expected ErrNoAnimator, got %v", err)
	}
}

func TestReloadPrefabAnimators(t *testing.T) {
	stubLoaders(t)
	t.Chdir(t.TempDir())

	w := ecs.NewWorld()
	player, err := BuildEntity(w, "player.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildEntity(w, "heart.yaml"); err != nil {
		t.Fatal(err)
	}

	override := `name: player
components:
  sprite_animator:
    sheet: player_sheet.png
    frame_w: 50
    frame_h: 37
    fps: 12
    default: Idle
    current: Idle
    clips:
      Idle:
        frames: [0, 1]
      Walk:
        frames: [8, 9]
`
	if err := os.MkdirAll(prefabs.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(prefabs.Dir, "player.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := ReloadPrefabAnimators(w, "prefabs/player.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected only the player to reload, got %d", n)
	}
	animator, _ := ecs.Get(w, player, component.SpriteAnimatorComponent.Kind())
	if !animator.Controller.Has("Walk") || animator.Controller.Has("Run") {
		t.Fatalf("expected the reloaded clips, got %v", animator.Controller.Names())
	}
	if animator.Controller.FPS() != 12 {
		t.Fatalf("expected 12 fps after reload, got %v", animator.Controller.FPS())
	}

	if n, err := ReloadPrefabAnimators(w, "spike.yaml"); err != nil || n != 0 {
		t.Fatalf("expected nothing to reload for spike, got %d %v", n, err)
	}
}
