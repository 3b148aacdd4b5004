package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/prefabs"
)

// Swapped in tests so entities can be built without a GPU or audio device.
var (
	loadImage       = render.LoadImage
	loadAudioPlayer = func(path string) (*audio.Player, error) { return assets.LoadAudioPlayer(path) }
)

// AudioEnabled controls whether audio components load their clips. With it off
// the audio component is skipped entirely.
var AudioEnabled = true

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"camera_target":        addCameraTarget,
	"input":                addInput,
	"player_collision":     addPlayerCollision,
	"transform":            addTransform,
	"sprite":               addSprite,
	"render_layer":         addRenderLayer,
	"camera":               addCamera,
	"physics_body":         addPhysicsBody,
	"gravity_scale":        addGravityScale,
	"character_controller": addCharacterController,
	"health":               addHealth,
	"damage_factor":        addDamageFactor,
	"heal_factor":          addHealFactor,
	"hazard":               addHazard,
	"pickup":               addPickup,
	"sprite_animator":      addSpriteAnimator,
	"animation_script":     addAnimationScript,
	"audio":                addAudio,
}

// sprite_animator must follow sprite and transform; it points the sprite at
// its sheet.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"camera_target",
	"input",
	"player_collision",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"physics_body",
	"gravity_scale",
	"character_controller",
	"health",
	"damage_factor",
	"heal_factor",
	"hazard",
	"pickup",
	"sprite_animator",
	"animation_script",
	"audio",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec builds an entity from an already decoded spec. prefabPath
// is only recorded for hot reload and error messages.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabs.RelativeName(prefabPath)}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string, raw any) error {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		return nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := build(name, raw); err != nil {
			return 0, err
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name, remaining[name]); err != nil {
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addCameraTarget(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTargetComponent.Kind(), &component.CameraTarget{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := loadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		size := sprite.Image.Bounds().Size()
		sprite.OriginX = float64(size.X) / 2
		sprite.OriginY = float64(size.Y) / 2
	}
	sprite.FacingLeft = spec.FacingLeft

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	if spec.ZoomStep == 0 {
		spec.ZoomStep = 0.1
	}
	if spec.MinZoom == 0 {
		spec.MinZoom = 0.1
	}
	if spec.MaxZoom == 0 {
		spec.MaxZoom = 5
	}
	if spec.MinZoom > spec.MaxZoom {
		return fmt.Errorf("min zoom %v above max zoom %v", spec.MinZoom, spec.MaxZoom)
	}
	cam := &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       common.Clamp(spec.Zoom, spec.MinZoom, spec.MaxZoom),
		Smoothness: spec.Smoothness,
		ZoomStep:   spec.ZoomStep,
		MinZoom:    spec.MinZoom,
		MaxZoom:    spec.MaxZoom,
	}
	if spec.Background != nil {
		cam.Background = spec.Background.Color
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Sensor:        spec.Sensor,
		FixedRotation: spec.FixedRotation,
		AlignTopLeft:  spec.AlignTopLeft,
		OffsetX:       spec.OffsetX,
		OffsetY:       spec.OffsetY,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type characterControllerSpec = prefabs.CharacterControllerComponentSpec

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character controller spec: %w", err)
	}
	if spec.Damping == 0 {
		spec.Damping = 1
	}
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
		Acceleration:  spec.Acceleration,
		Damping:       spec.Damping,
		JumpImpulse:   spec.JumpImpulse,
		MaxSlopeAngle: common.Radians(spec.MaxSlopeDeg),
		MaxSpeed:      spec.MaxSpeed,
	})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Maximum <= 0 {
		spec.Maximum = 1
	}
	health := component.NewHealth(spec.Maximum)
	if spec.Current != 0 {
		health.WithCurrent(spec.Current)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), health)
}

type factorSpec = prefabs.FactorComponentSpec

func addDamageFactor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[factorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode damage factor spec: %w", err)
	}
	if spec.Value < 0 {
		return fmt.Errorf("damage factor %d is negative", spec.Value)
	}
	return ecs.Add(w, e, component.DamageFactorComponent.Kind(), &component.DamageFactor{Value: spec.Value})
}

func addHealFactor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[factorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode heal factor spec: %w", err)
	}
	if spec.Value < 0 {
		return fmt.Errorf("heal factor %d is negative", spec.Value)
	}
	return ecs.Add(w, e, component.HealFactorComponent.Kind(), &component.HealFactor{Value: spec.Value})
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Width:    spec.Width,
		Height:   spec.Height,
		OffsetX:  spec.OffsetX,
		OffsetY:  spec.OffsetY,
		Cooldown: spec.Cooldown,
	})
}

type pickupSpec = prefabs.PickupComponentSpec

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pickupSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:            spec.Kind,
		BobAmplitude:    spec.BobAmplitude,
		BobSpeed:        spec.BobSpeed,
		CollisionWidth:  spec.CollisionWidth,
		CollisionHeight: spec.CollisionHeight,
	})
}

type spriteAnimatorSpec = prefabs.SpriteAnimatorComponentSpec

func addSpriteAnimator(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteAnimatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite animator spec: %w", err)
	}
	controller, err := NewAnimationController(spec)
	if err != nil {
		return err
	}
	atlas, err := NewTextureAtlas(spec)
	if err != nil {
		return err
	}
	showFirstFrame(atlas, controller)

	if err := ecs.Add(w, e, component.TextureAtlasComponent.Kind(), atlas); err != nil {
		return err
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Image = atlas.Sheet
		sprite.UseSource = true
		sprite.Source = atlas.Rect()
	}

	prefab := ""
	if ctx != nil {
		prefab = ctx.PrefabPath
	}
	return ecs.Add(w, e, component.SpriteAnimatorComponent.Kind(), &component.SpriteAnimator{
		Controller: controller,
		Prefab:     prefab,
	})
}

type animationScriptSpec = prefabs.AnimationScriptComponentSpec

func addAnimationScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation script spec: %w", err)
	}
	path := strings.TrimSpace(spec.Script)
	if path == "" {
		return fmt.Errorf("animation script needs a script")
	}
	path = strings.TrimPrefix(path, prefabs.Dir+"/")
	path = strings.TrimPrefix(path, "scripts/")
	return ecs.Add(w, e, component.AnimationScriptComponent.Kind(), &component.AnimationScript{Path: path})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if !AudioEnabled {
		return nil
	}
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponent(spec)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}
