package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func playerController() *component.CharacterController {
	return &component.CharacterController{
		Acceleration:  PlayerAcceleration,
		Damping:       PlayerDamping,
		JumpImpulse:   PlayerJumpImpulse,
		MaxSlopeAngle: common.Radians(PlayerMaxSlopeDeg),
		MaxSpeed:      PlayerMaxSpeed,
	}
}

func TestSteer(t *testing.T) {
	cc := playerController()
	dt := 1.0 / 60

	got := Steer(0, 1, PlayerMass, cc, dt)
	want := (PlayerAcceleration / PlayerMass * dt) / (1 + dt*PlayerDamping)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := Steer(500, 1, PlayerMass, cc, dt); got != PlayerMaxSpeed {
		t.Fatalf("expected speed capped at %v, got %v", PlayerMaxSpeed, got)
	}
	if got := Steer(-500, -1, PlayerMass, cc, dt); got != -PlayerMaxSpeed {
		t.Fatalf("expected speed capped at %v, got %v", -PlayerMaxSpeed, got)
	}

	// Without input, damping slows the body down.
	if got := Steer(60, 0, PlayerMass, cc, dt); got >= 60 || got <= 0 {
		t.Fatalf("expected damping to reduce 60, got %v", got)
	}
}

func TestWithinSlope(t *testing.T) {
	maxSlope := common.Radians(30)
	cases := []struct {
		name   string
		nx, ny float64
		want   bool
	}{
		{"flat", 0, -1, true},
		{"unnormalized", 0, -5, true},
		{"at_limit", math.Sin(maxSlope), -math.Cos(maxSlope), true},
		{"steep", math.Sin(common.Radians(45)), -math.Cos(common.Radians(45)), false},
		{"wall", 1, 0, false},
		{"ceiling", 0, 1, false},
		{"none", 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WithinSlope(c.nx, c.ny, maxSlope); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCharacterControllerJump(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		normalX  float64
		normalY  float64
		dead     bool
		wantJump bool
	}{
		{"grounded", true, 0, -1, false, true},
		{"airborne", false, 0, 0, false, false},
		{"too_steep", true, 1, -0.2, false, false},
		{"dead", true, 0, -1, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDelta(common.TickDelta)
			e := w.CreateEntity()
			body := cp.NewBody(PlayerMass, math.Inf(1))
			_ = ecs.Add(w, e, component.CharacterControllerComponent.Kind(), playerController())
			_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, Jump: true, JumpPressed: true})
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Mass: PlayerMass})
			_ = ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{
				Grounded: c.grounded,
				NormalX:  c.normalX,
				NormalY:  c.normalY,
			})
			if c.dead {
				_ = ecs.Add(w, e, component.DeadComponent.Kind(), &component.Dead{})
			}

			NewCharacterControllerSystem().Update(w)

			v := body.Velocity()
			jumped := math.Abs(v.Y+PlayerJumpImpulse/PlayerMass) < 1e-9
			if jumped != c.wantJump {
				t.Fatalf("expected jump=%v, got velocity %v", c.wantJump, v)
			}
			if c.dead && v.X != 0 {
				t.Fatalf("expected a dead player to ignore input, got vx=%v", v.X)
			}
			if !c.dead && v.X <= 0 {
				t.Fatalf("expected rightward velocity, got %v", v.X)
			}
		})
	}
}
