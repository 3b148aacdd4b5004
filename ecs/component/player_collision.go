package component

// PlayerCollision stores per-player collision state derived from physics contacts.
type PlayerCollision struct {
	Grounded    bool
	GroundGrace int
	// Ground contact normal pointing from the ground towards the player.
	NormalX float64
	NormalY float64
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
