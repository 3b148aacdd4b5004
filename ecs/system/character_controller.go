package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CharacterControllerSystem turns Input into forces on the player body.
type CharacterControllerSystem struct{}

func NewCharacterControllerSystem() *CharacterControllerSystem {
	return &CharacterControllerSystem{}
}

func (s *CharacterControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()
	if dt <= 0 {
		return
	}

	ecs.ForEach3(w, component.CharacterControllerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, cc *component.CharacterController, input *component.Input, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		grounded := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			grounded = pc.Grounded && WithinSlope(pc.NormalX, pc.NormalY, cc.MaxSlopeAngle)
		}
		moveX, jump := input.MoveX, input.JumpPressed
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			moveX, jump = 0, false
		}

		v := body.Body.Velocity()
		vx := Steer(v.X, moveX, body.Mass, cc, dt)
		vy := v.Y
		if jump && grounded {
			vy = -cc.JumpImpulse / mass(body.Mass)
		}
		body.Body.SetVelocity(vx, vy)
	})
}

// Steer applies one tick of horizontal acceleration and linear damping to vx.
func Steer(vx, moveX, bodyMass float64, cc *component.CharacterController, dt float64) float64 {
	vx += moveX * cc.Acceleration / mass(bodyMass) * dt
	if cc.Damping > 0 {
		vx /= 1 + dt*cc.Damping
	}
	if cc.MaxSpeed > 0 {
		vx = math.Max(-cc.MaxSpeed, math.Min(cc.MaxSpeed, vx))
	}
	return vx
}

// WithinSlope reports whether a ground normal (pointing from the ground towards
// the body) is at most maxSlope radians away from straight up.
func WithinSlope(nx, ny, maxSlope float64) bool {
	length := math.Hypot(nx, ny)
	if length == 0 {
		return false
	}
	// Screen space: up is -Y.
	cos := -ny / length
	return cos >= math.Cos(maxSlope)-1e-9
}

func mass(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}
