package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const defaultHazardCooldown = 30

// ContactSystem resolves overlaps between the player and hazards or pickups.
// A hazard queues Damage from its DamageFactor; a pickup queues Heal from its
// HealFactor and is destroyed.
type ContactSystem struct {
	cooldowns map[ecs.Entity]int
}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{cooldowns: make(map[ecs.Entity]int)}
}

type aabb struct {
	x float64
	y float64
	w float64
	h float64
}

func overlapsAABB(a, b aabb) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

func physicsBodyAABB(t *component.Transform, b *component.PhysicsBody) (aabb, bool) {
	if t == nil || b == nil {
		return aabb{}, false
	}
	width, height := b.Width, b.Height
	if b.Radius > 0 {
		width, height = b.Radius*2, b.Radius*2
	}
	if width <= 0 || height <= 0 {
		return aabb{}, false
	}
	if b.AlignTopLeft {
		return aabb{x: t.X + b.OffsetX, y: t.Y + b.OffsetY, w: width, h: height}, true
	}
	return aabb{x: t.X + b.OffsetX - width/2, y: t.Y + b.OffsetY - height/2, w: width, h: height}, true
}

// centeredAABB boxes a w×h area centered on the transform plus an offset.
func centeredAABB(t *component.Transform, offsetX, offsetY, w, h float64) aabb {
	return aabb{x: t.X + offsetX - w/2, y: t.Y + offsetY - h/2, w: w, h: h}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if s.cooldowns == nil {
		s.cooldowns = make(map[ecs.Entity]int)
	}
	for e, ticks := range s.cooldowns {
		if ticks <= 1 || !w.IsAlive(e) {
			delete(s.cooldowns, e)
			continue
		}
		s.cooldowns[e] = ticks - 1
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok || !ecs.Has(w, player, component.AliveComponent.Kind()) {
		return
	}
	playerTransform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerBody, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	playerBox, ok := physicsBodyAABB(playerTransform, playerBody)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		if h.Width <= 0 || h.Height <= 0 || s.cooldowns[e] > 0 {
			return
		}
		if !overlapsAABB(playerBox, centeredAABB(t, h.OffsetX, h.OffsetY, h.Width, h.Height)) {
			return
		}
		factor, ok := ecs.Get(w, e, component.DamageFactorComponent.Kind())
		if !ok || factor.Value <= 0 {
			return
		}
		queueDamage(w, player, factor.Value)
		cooldown := h.Cooldown
		if cooldown <= 0 {
			cooldown = defaultHazardCooldown
		}
		s.cooldowns[e] = cooldown
	})

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
		kw, kh := p.CollisionWidth, p.CollisionHeight
		if kw <= 0 || kh <= 0 {
			kw, kh = 16, 16
		}
		if !overlapsAABB(playerBox, centeredAABB(t, 0, 0, kw, kh)) {
			return
		}
		if factor, ok := ecs.Get(w, e, component.HealFactorComponent.Kind()); ok && factor.Value > 0 {
			queueHeal(w, player, factor.Value)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventPickedUp, Entity: player, Data: p.Kind})
		w.DestroyEntity(e)
	})
}

// queueDamage adds to a pending Damage so several hits in one tick all count.
func queueDamage(w *ecs.World, e ecs.Entity, value int) {
	if d, ok := ecs.Get(w, e, component.DamageComponent.Kind()); ok {
		d.Value += value
		return
	}
	_ = ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Value: value})
}

func queueHeal(w *ecs.World, e ecs.Entity, value int) {
	if h, ok := ecs.Get(w, e, component.HealComponent.Kind()); ok {
		h.Value += value
		return
	}
	_ = ecs.Add(w, e, component.HealComponent.Kind(), &component.Heal{Value: value})
}
