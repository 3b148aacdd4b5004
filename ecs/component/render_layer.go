package component

const (
	LayerBackground = 0
	LayerTiles      = 1
	LayerProps      = 2
	LayerActors     = 3
)

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
