package component

// GravityScale scales world gravity for a dynamic physics body.
// 1 = normal gravity, 0 = no gravity. A missing component means 1.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
