package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	defaultZoomStep = 0.1
	defaultMinZoom  = 0.1
	defaultMaxZoom  = 5.0
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	viewW        float64
	viewH        float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{viewW: common.BaseWidth, viewH: common.BaseHeight}
}

// Update applies wheel zoom and moves the camera transform so the target sits
// at the center of the view. The camera transform holds the view's top-left.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if input, ok := ecs.Get(w, cs.camEntity, component.InputComponent.Kind()); ok && input.Zoom != 0 {
		ApplyZoom(camComp, input.Zoom)
	}
	if camComp.Zoom <= 0 {
		camComp.Zoom = 1
	}

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findCameraTarget(w, camComp.TargetName)
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	viewW := cs.viewW / camComp.Zoom
	viewH := cs.viewH / camComp.Zoom
	x := targetTransform.X - viewW/2
	y := targetTransform.Y - viewH/2
	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			x = clampView(x, viewW, bounds.Width)
			y = clampView(y, viewH, bounds.Height)
		}
	}

	t := camComp.Smoothness
	if t <= 0 || t > 1 {
		t = 1
	}
	camTransform.X = float64(common.Lerp(float32(camTransform.X), float32(x), float32(t)))
	camTransform.Y = float64(common.Lerp(float32(camTransform.Y), float32(y), float32(t)))
}

// ApplyZoom changes the zoom by notches wheel steps, clamped to the camera's
// range. Positive notches zoom in.
func ApplyZoom(cam *component.Camera, notches float64) {
	step := cam.ZoomStep
	if step <= 0 {
		step = defaultZoomStep
	}
	minZoom, maxZoom := cam.MinZoom, cam.MaxZoom
	if minZoom <= 0 {
		minZoom = defaultMinZoom
	}
	if maxZoom <= 0 || maxZoom < minZoom {
		maxZoom = defaultMaxZoom
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	cam.Zoom = common.Clamp(zoom+notches*step, minZoom, maxZoom)
}

// clampView keeps a view of size view inside [0, world], centering it when the
// world is smaller than the view.
func clampView(pos, view, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world <= view {
		return (world - view) / 2
	}
	return common.Clamp(pos, 0, world-view)
}

func findCameraTarget(w *ecs.World, name string) ecs.Entity {
	if e, ok := w.First(component.CameraTargetComponent.Kind()); ok {
		return e
	}
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
