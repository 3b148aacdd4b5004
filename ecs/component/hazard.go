package component

// Hazard marks an entity as dangerous on overlap.
// The box is centered on Transform, shifted by the offsets.
// Contact damage comes from the entity's DamageFactor.
type Hazard struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	// Cooldown is the number of ticks between two hits on the same target.
	Cooldown int
}

var HazardComponent = NewComponent[Hazard]()
