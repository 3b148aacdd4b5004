package system

import (
	"log"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Player and tile defaults applied to freshly spawned entities.
const (
	PlayerColliderRadius = 12.5
	PlayerMass           = 0.3
	PlayerAcceleration   = 125.0
	PlayerDamping        = 1.0
	PlayerJumpImpulse    = 130.0
	PlayerMaxSlopeDeg    = 30.0
	PlayerMaxSpeed       = 180.0
	PlayerHealth         = 100
	PlayerGravityScale   = 10.0

	TileColliderShift = 12.0
	TileColliderSize  = 23.9
)

// LevelSetupSystem completes entities the level loader only tagged: players
// get a body, controller and health, collidable cells get a static collider.
// Values already present on the entity (e.g. from a prefab) are kept.
type LevelSetupSystem struct{}

func NewLevelSetupSystem() *LevelSetupSystem { return &LevelSetupSystem{} }

func (s *LevelSetupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind()) {
		if ecs.Has(w, e, component.ConfiguredComponent.Kind()) {
			continue
		}
		setupPlayer(w, e)
	}

	for _, e := range w.Query(component.CollidableComponent.Kind()) {
		if ecs.Has(w, e, component.ConfiguredComponent.Kind()) {
			continue
		}
		setupCollidable(w, e)
	}
}

func setupPlayer(w *ecs.World, e ecs.Entity) {
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	}
	if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Radius:        PlayerColliderRadius,
			Mass:          PlayerMass,
			FixedRotation: true,
		})
	}
	if !ecs.Has(w, e, component.CharacterControllerComponent.Kind()) {
		_ = ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
			Acceleration:  PlayerAcceleration,
			Damping:       PlayerDamping,
			JumpImpulse:   PlayerJumpImpulse,
			MaxSlopeAngle: common.Radians(PlayerMaxSlopeDeg),
			MaxSpeed:      PlayerMaxSpeed,
		})
	}
	if !ecs.Has(w, e, component.GravityScaleComponent.Kind()) {
		_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: PlayerGravityScale})
	}
	if !ecs.Has(w, e, component.HealthComponent.Kind()) {
		_ = ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(PlayerHealth))
	}
	if !ecs.Has(w, e, component.PlayerCollisionComponent.Kind()) {
		_ = ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) {
		_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	}
	if !ecs.Has(w, e, component.AliveComponent.Kind()) && !ecs.Has(w, e, component.DeadComponent.Kind()) {
		_ = ecs.Add(w, e, component.AliveComponent.Kind(), &component.Alive{})
	}
	if err := ecs.Add(w, e, component.ConfiguredComponent.Kind(), &component.Configured{}); err != nil {
		log.Printf("level setup: player %s: %v", e, err)
	}
}

func setupCollidable(w *ecs.World, e ecs.Entity) {
	if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:   TileColliderSize,
			Height:  TileColliderSize,
			Static:  true,
			OffsetX: TileColliderShift,
			OffsetY: TileColliderShift,
		})
	}
	if err := ecs.Add(w, e, component.ConfiguredComponent.Kind(), &component.Configured{}); err != nil {
		log.Printf("level setup: cell %s: %v", e, err)
	}
}
