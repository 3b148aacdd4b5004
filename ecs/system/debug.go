package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const debugEventHistory = 6

// DebugSystem collects gameplay events during update and draws the physics
// shapes plus a text overlay when enabled.
type DebugSystem struct {
	physics *PhysicsSystem
	enabled bool
	recent  []string
}

func NewDebugSystem(physics *PhysicsSystem, enabled bool) *DebugSystem {
	d := &DebugSystem{physics: physics}
	d.SetEnabled(enabled)
	return d
}

func (d *DebugSystem) Enabled() bool { return d != nil && d.enabled }

func (d *DebugSystem) SetEnabled(enabled bool) {
	if d == nil || d.enabled == enabled {
		return
	}
	d.enabled = enabled
	if enabled {
		log.Println("debug: overlay enabled")
	}
}

func (d *DebugSystem) Toggle() {
	d.SetEnabled(!d.Enabled())
}

// Recent returns the latest event lines, oldest first.
func (d *DebugSystem) Recent() []string {
	return append([]string(nil), d.recent...)
}

func (d *DebugSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	for _, t := range []ecs.EventType{ecs.EventDamaged, ecs.EventHealed, ecs.EventDied, ecs.EventPickedUp, ecs.EventClipMissing} {
		for _, evt := range w.Events().Peek(t) {
			line := fmt.Sprintf("%s %s", evt.Entity, evt.Type)
			if evt.Data != nil {
				line = fmt.Sprintf("%s %v", line, evt.Data)
			}
			d.recent = append(d.recent, line)
		}
	}
	if extra := len(d.recent) - debugEventHistory; extra > 0 {
		d.recent = d.recent[extra:]
	}
}

func (d *DebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if !d.Enabled() || w == nil || screen == nil {
		return
	}
	if d.physics != nil {
		DrawPhysicsDebug(d.physics.Space(), w, screen)
	}
	ebitenutil.DebugPrintAt(screen, d.overlayText(w), 8, 8)
}

func (d *DebugSystem) overlayText(w *ecs.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %0.1f TPS: %0.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return b.String()
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		fmt.Fprintf(&b, "Health: %d/%d\n", h.Current, h.Maximum)
	}
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		fmt.Fprintf(&b, "Grounded: %v normal=(%.2f, %.2f)\n", pc.Grounded, pc.NormalX, pc.NormalY)
	}
	if animator, ok := ecs.Get(w, player, component.SpriteAnimatorComponent.Kind()); ok && animator.Controller != nil {
		c := animator.Controller
		fmt.Fprintf(&b, "Clip: %s [%s] cursor=%d fps=%.1f\n", c.CurrentName(), c.Current().Mode(), c.Current().Cursor(), c.FPS())
	}
	for _, line := range d.recent {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
