package system

import (
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/platformer/ecs"
)

func TestDebugSystemToggle(t *testing.T) {
	d := NewDebugSystem(nil, false)
	if d.Enabled() {
		t.Fatalf("expected the overlay to start disabled")
	}
	d.Toggle()
	if !d.Enabled() {
		t.Fatalf("expected Toggle to enable the overlay")
	}
	d.SetEnabled(true)
	d.Toggle()
	if d.Enabled() {
		t.Fatalf("expected Toggle to disable the overlay")
	}

	var nilDebug *DebugSystem
	if nilDebug.Enabled() {
		t.Fatalf("a nil debug system is never enabled")
	}
}

func TestDebugSystemRecentEvents(t *testing.T) {
	w := ecs.NewWorld()
	d := NewDebugSystem(nil, true)
	e := w.CreateEntity()

	for i := 0; i < debugEventHistory+2; i++ {
		w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Entity: e, Data: i})
		d.Update(w)
		w.Events().Drain()
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDied, Entity: e})
	d.Update(w)

	recent := d.Recent()
	if len(recent) != debugEventHistory {
		t.Fatalf("expected %d recent lines, got %d", debugEventHistory, len(recent))
	}
	if last := recent[len(recent)-1]; last != fmt.Sprintf("%s died", e) {
		t.Fatalf("expected the death last, got %q", last)
	}
	if !strings.HasSuffix(recent[0], " 3") {
		t.Fatalf("expected the oldest kept line to be damage 3, got %q", recent[0])
	}

	recent[0] = "changed"
	if d.Recent()[0] == "changed" {
		t.Fatalf("Recent should return a copy")
	}
}
