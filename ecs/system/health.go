package system

import (
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// HealthSystem applies pending Heal then Damage requests. Both are one-shot and
// removed once handled.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem { return &HealthSystem{} }

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.applyHeal(w)
	s.applyDamage(w)
}

func (s *HealthSystem) applyHeal(w *ecs.World) {
	ecs.ForEach2(w, component.HealComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, heal *component.Heal, health *component.Health) {
		if ecs.Has(w, e, component.AliveComponent.Kind()) && heal.Value > 0 {
			before := health.Current
			health.WithCurrent(health.Current + heal.Value)
			w.Events().Push(ecs.Event{Type: ecs.EventHealed, Entity: e, Data: health.Current - before})
		}
		ecs.Remove(w, e, component.HealComponent.Kind())
	})
}

func (s *HealthSystem) applyDamage(w *ecs.World) {
	ecs.ForEach2(w, component.DamageComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, damage *component.Damage, health *component.Health) {
		defer ecs.Remove(w, e, component.DamageComponent.Kind())
		if !ecs.Has(w, e, component.AliveComponent.Kind()) || damage.Value <= 0 {
			return
		}
		if damage.Value >= health.Current {
			health.Current = 0
			ecs.Remove(w, e, component.AliveComponent.Kind())
			_ = ecs.Add(w, e, component.DeadComponent.Kind(), &component.Dead{})
			w.Events().Push(ecs.Event{Type: ecs.EventDied, Entity: e})
			log.Printf("health: %s died", e)
			return
		}
		health.Current -= damage.Value
		w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Entity: e, Data: damage.Value})
	})
}
