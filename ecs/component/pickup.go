package component

// Pickup is a collectible with bob and collision behavior.
type Pickup struct {
	Kind            string
	BaseY           float64
	BobAmplitude    float64
	BobSpeed        float64
	BobPhase        float64
	CollisionWidth  float64
	CollisionHeight float64
	Initialized     bool
}

var PickupComponent = NewComponent[Pickup]()
