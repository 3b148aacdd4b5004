package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
	// Zoom is the mouse wheel movement of this frame, positive away from the user.
	Zoom float64
}

var InputComponent = NewComponent[Input]()
