package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

// Frame returns the drawable part of the sprite image.
func (s *Sprite) Frame() *ebiten.Image {
	if s == nil || s.Image == nil {
		return nil
	}
	if !s.UseSource {
		return s.Image
	}
	if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
		return sub
	}
	return s.Image
}

// Size returns the pixel size of the drawable frame.
func (s *Sprite) Size() (float64, float64) {
	if s == nil || s.Image == nil {
		return 0, 0
	}
	if s.UseSource {
		return float64(s.Source.Dx()), float64(s.Source.Dy())
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

var SpriteComponent = NewComponent[Sprite]()
