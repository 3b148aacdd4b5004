package component

// CharacterController drives a dynamic body from Input.
type CharacterController struct {
	// Acceleration is the horizontal velocity gained per second of held input.
	Acceleration float64
	// Damping multiplies horizontal velocity every tick; 1 keeps it unchanged.
	Damping     float64
	JumpImpulse float64
	// MaxSlopeAngle in radians; steeper ground contacts do not count as ground.
	MaxSlopeAngle float64
	MaxSpeed      float64
}

var CharacterControllerComponent = NewComponent[CharacterController]()
