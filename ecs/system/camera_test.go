package system

import (
	"math"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestApplyZoom(t *testing.T) {
	cases := []struct {
		name    string
		cam     component.Camera
		notches float64
		want    float64
	}{
		{"zoom_in", component.Camera{Zoom: 1}, 1, 1.1},
		{"zoom_out", component.Camera{Zoom: 1}, -2, 0.8},
		{"clamp_max", component.Camera{Zoom: 4.95}, 3, 5},
		{"clamp_min", component.Camera{Zoom: 0.15}, -2, 0.1},
		{"custom_step", component.Camera{Zoom: 2, ZoomStep: 0.5, MinZoom: 1, MaxZoom: 3}, 1, 2.5},
		{"custom_range", component.Camera{Zoom: 2, ZoomStep: 0.5, MinZoom: 1, MaxZoom: 3}, 5, 3},
		{"unset_zoom", component.Camera{}, 1, 1.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := c.cam
			ApplyZoom(&cam, c.notches)
			if math.Abs(cam.Zoom-c.want) > 1e-9 {
				t.Fatalf("expected zoom %v, got %v", c.want, cam.Zoom)
			}
		})
	}
}

func TestClampView(t *testing.T) {
	cases := []struct {
		pos, view, world, want float64
	}{
		{-10, 100, 500, 0},
		{450, 100, 500, 400},
		{200, 100, 500, 200},
		{0, 100, 60, -20},
		{33, 100, 0, 33},
	}
	for _, c := range cases {
		if got := clampView(c.pos, c.view, c.world); got != c.want {
			t.Fatalf("clampView(%v, %v, %v) = %v, want %v", c.pos, c.view, c.world, got, c.want)
		}
	}
}

func TestCameraFollowsTarget(t *testing.T) {
	w := ecs.NewWorld()

	bounds := w.CreateEntity()
	_ = ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1152, Height: 384})

	cam := w.CreateEntity()
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 2, Smoothness: 1})
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, cam, component.InputComponent.Kind(), &component.Input{})

	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 500, Y: 200})

	cs := NewCameraSystem()
	cs.Update(w)

	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if tr.X != 340 || tr.Y != 110 {
		t.Fatalf("expected view at (340,110), got (%v,%v)", tr.X, tr.Y)
	}

	// Near the left edge the view stops at the level bounds.
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.X, pt.Y = 20, 20
	cs.Update(w)
	if tr.X != 0 || tr.Y != 0 {
		t.Fatalf("expected view clamped to (0,0), got (%v,%v)", tr.X, tr.Y)
	}

	input, _ := ecs.Get(w, cam, component.InputComponent.Kind())
	input.Zoom = 1
	cs.Update(w)
	camComp, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if math.Abs(camComp.Zoom-2.1) > 1e-9 {
		t.Fatalf("expected wheel to zoom to 2.1, got %v", camComp.Zoom)
	}
}

func TestCameraPrefersCameraTarget(t *testing.T) {
	w := ecs.NewWorld()
	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	target := w.CreateEntity()
	_ = ecs.Add(w, target, component.CameraTargetComponent.Kind(), &component.CameraTarget{})

	if got := findCameraTarget(w, "player"); got != target {
		t.Fatalf("expected the CameraTarget entity, got %s", got)
	}
	ecs.Remove(w, target, component.CameraTargetComponent.Kind())
	if got := findCameraTarget(w, "player"); got != player {
		t.Fatalf("expected the player, got %s", got)
	}
	if got := findCameraTarget(w, "boss"); got.Valid() {
		t.Fatalf("expected no target for an unknown name, got %s", got)
	}
}
