package system

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type fakeInput struct {
	moveX   float64
	held    bool
	pressed bool
	wheel   float64
}

func (f *fakeInput) MoveX() float64     { return f.moveX }
func (f *fakeInput) Jump() (bool, bool) { return f.held, f.pressed }
func (f *fakeInput) Wheel() float64     { return f.wheel }

func TestInputSystemFillsEveryInput(t *testing.T) {
	w := ecs.NewWorld()
	player := w.CreateEntity()
	cam := w.CreateEntity()
	other := w.CreateEntity()
	_ = ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, cam, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, other, component.TransformComponent.Kind(), &component.Transform{})

	src := &fakeInput{moveX: -1, held: true, pressed: true, wheel: 2}
	s := NewInputSystemWithSource(src)
	s.Update(w)

	for _, e := range []ecs.Entity{player, cam} {
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in.MoveX != -1 || !in.Jump || !in.JumpPressed || in.Zoom != 2 {
			t.Fatalf("unexpected input %+v", in)
		}
	}
	if ecs.Has(w, other, component.InputComponent.Kind()) {
		t.Fatalf("input system should not add Input")
	}

	*src = fakeInput{held: true}
	s.Update(w)
	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if in.MoveX != 0 || !in.Jump || in.JumpPressed || in.Zoom != 0 {
		t.Fatalf("expected per-frame values to reset, got %+v", in)
	}
}
