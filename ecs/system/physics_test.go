package system

import (
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// newFloorWorld builds a row of collidable cells at row 4 and a player above it.
func newFloorWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetDelta(common.TickDelta)

	bounds := w.CreateEntity()
	_ = ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 240, Height: 120, TileSize: common.TileSize})

	for x := 0; x < 10; x++ {
		cell := w.CreateEntity()
		_ = ecs.Add(w, cell, component.CollidableComponent.Kind(), &component.Collidable{})
		_ = ecs.Add(w, cell, component.TransformComponent.Kind(), &component.Transform{X: float64(x) * common.TileSize, Y: 4 * common.TileSize})
	}

	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 120, Y: 40, ScaleX: 1, ScaleY: 1})
	return w, player
}

func TestPhysicsPlayerLandsOnFloor(t *testing.T) {
	w, player := newFloorWorld(t)
	setup := NewLevelSetupSystem()
	physics := NewPhysicsSystem()

	for i := 0; i < 180; i++ {
		setup.Update(w)
		physics.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	floorTop := 4.0 * common.TileSize
	if tr.Y > floorTop || tr.Y < floorTop-2*PlayerColliderRadius {
		t.Fatalf("expected the player to rest on the floor at %v, got y=%v", floorTop, tr.Y)
	}
	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatalf("expected the player to be grounded")
	}
	if pc.NormalY >= 0 {
		t.Fatalf("expected an upward ground normal, got (%v,%v)", pc.NormalX, pc.NormalY)
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Body == nil || body.Shape == nil {
		t.Fatalf("expected the physics system to fill in the body")
	}
}

func TestPhysicsGravityScale(t *testing.T) {
	fall := func(scale float64) float64 {
		w := ecs.NewWorld()
		w.SetDelta(common.TickDelta)
		e := w.CreateEntity()
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 0})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 4, Mass: 1})
		_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale})
		ps := NewPhysicsSystem()
		for i := 0; i < 30; i++ {
			ps.Update(w)
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		return tr.Y
	}

	still := fall(0)
	normal := fall(1)
	heavy := fall(10)
	if still != 0 {
		t.Fatalf("expected no fall without gravity, got %v", still)
	}
	if normal <= 0 || heavy <= normal*5 {
		t.Fatalf("expected scale 10 to fall much further: scale 1 %v, scale 10 %v", normal, heavy)
	}
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w, player := newFloorWorld(t)
	NewLevelSetupSystem().Update(w)
	ps := NewPhysicsSystem()
	ps.Update(w)

	before := len(ps.entities)
	w.DestroyEntity(player)
	ps.Update(w)
	if len(ps.entities) != before-1 {
		t.Fatalf("expected the player body to be removed, %d -> %d", before, len(ps.entities))
	}
	if len(ps.groundShapes) != 0 {
		t.Fatalf("expected the ground sensor to be removed")
	}

	ps.Reset()
	ps.Update(w)
	if ps.Space() == nil || len(ps.entities) != before-1 {
		t.Fatalf("expected Reset to rebuild the space from the world")
	}
}
