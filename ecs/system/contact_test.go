package system

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func newContactPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.AliveComponent.Kind(), &component.Alive{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: PlayerColliderRadius})
	return e
}

func newSpike(w *ecs.World, x, y float64, damage int) ecs.Entity {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Width: 20, Height: 10, OffsetY: 6, Cooldown: 3})
	_ = ecs.Add(w, e, component.DamageFactorComponent.Kind(), &component.DamageFactor{Value: damage})
	return e
}

func newHeart(w *ecs.World, x, y float64, heal int) ecs.Entity {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: "heart", CollisionWidth: 14, CollisionHeight: 14})
	_ = ecs.Add(w, e, component.HealFactorComponent.Kind(), &component.HealFactor{Value: heal})
	return e
}

func TestContactHazardQueuesDamage(t *testing.T) {
	w := ecs.NewWorld()
	player := newContactPlayer(t, w, 100, 100)
	newSpike(w, 100, 110, 25)
	newSpike(w, 110, 110, 10)
	newSpike(w, 400, 110, 99)

	s := NewContactSystem()
	s.Update(w)

	d, ok := ecs.Get(w, player, component.DamageComponent.Kind())
	if !ok || d.Value != 35 {
		t.Fatalf("expected both touching spikes to add up to 35, got %+v", d)
	}

	// Cooldown holds for the next ticks.
	ecs.Remove(w, player, component.DamageComponent.Kind())
	s.Update(w)
	if ecs.Has(w, player, component.DamageComponent.Kind()) {
		t.Fatalf("expected hazard cooldown to block a second hit")
	}
	s.Update(w)
	s.Update(w)
	if !ecs.Has(w, player, component.DamageComponent.Kind()) {
		t.Fatalf("expected a hit once the cooldown ran out")
	}
}

func TestContactPickupQueuesHeal(t *testing.T) {
	w := ecs.NewWorld()
	player := newContactPlayer(t, w, 100, 100)
	heart := newHeart(w, 105, 95, 20)
	far := newHeart(w, 300, 95, 20)

	NewContactSystem().Update(w)

	h, ok := ecs.Get(w, player, component.HealComponent.Kind())
	if !ok || h.Value != 20 {
		t.Fatalf("expected heal 20, got %+v", h)
	}
	if w.IsAlive(heart) {
		t.Fatalf("expected the collected pickup to be destroyed")
	}
	if !w.IsAlive(far) {
		t.Fatalf("expected the distant pickup to remain")
	}
	picked := w.Events().Peek(ecs.EventPickedUp)
	if len(picked) != 1 || picked[0].Entity != player || picked[0].Data != "heart" {
		t.Fatalf("unexpected picked up events %+v", picked)
	}
}

func TestContactIgnoresDeadPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := newContactPlayer(t, w, 100, 100)
	ecs.Remove(w, player, component.AliveComponent.Kind())
	newSpike(w, 100, 110, 25)
	heart := newHeart(w, 100, 100, 20)

	NewContactSystem().Update(w)

	if ecs.Has(w, player, component.DamageComponent.Kind()) || ecs.Has(w, player, component.HealComponent.Kind()) {
		t.Fatalf("expected no requests for a dead player")
	}
	if !w.IsAlive(heart) {
		t.Fatalf("expected pickups to stay while the player is dead")
	}
}

func TestOverlapsAABB(t *testing.T) {
	a := aabb{x: 0, y: 0, w: 10, h: 10}
	cases := []struct {
		name string
		b    aabb
		want bool
	}{
		{"inside", aabb{x: 2, y: 2, w: 2, h: 2}, true},
		{"partial", aabb{x: 5, y: 5, w: 10, h: 10}, true},
		{"touching_edge", aabb{x: 10, y: 0, w: 5, h: 5}, false},
		{"apart", aabb{x: 20, y: 20, w: 1, h: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := overlapsAABB(a, c.b); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
