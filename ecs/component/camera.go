package component

import "image/color"

type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	// ZoomStep is the zoom change per wheel notch; MinZoom and MaxZoom clamp it.
	ZoomStep float64
	MinZoom  float64
	MaxZoom  float64
	// Background fills the screen before the world is drawn. Nil leaves it black.
	Background color.Color
}

var CameraComponent = NewComponent[Camera]()
