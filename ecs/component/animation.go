package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/anim"
)

// TextureAtlas maps a frame index onto a grid of equally sized cells in a sheet.
// It is the host side of anim.FrameSink.
type TextureAtlas struct {
	Sheet   *ebiten.Image
	FrameW  int
	FrameH  int
	Columns int
	Index   int
}

func (t *TextureAtlas) SetFrameIndex(index int) {
	t.Index = index
}

// Rect returns the sheet rectangle of the current index.
func (t *TextureAtlas) Rect() image.Rectangle {
	return t.CellRect(t.Index)
}

// CellRect returns the sheet rectangle of cell index, counted left to right,
// top to bottom.
func (t *TextureAtlas) CellRect(index int) image.Rectangle {
	if t.FrameW <= 0 || t.FrameH <= 0 {
		return image.Rectangle{}
	}
	cols := t.Columns
	if cols <= 0 && t.Sheet != nil {
		cols = t.Sheet.Bounds().Dx() / t.FrameW
	}
	if cols <= 0 {
		cols = 1
	}
	if index < 0 {
		index = 0
	}
	x := (index % cols) * t.FrameW
	y := (index / cols) * t.FrameH
	return image.Rect(x, y, x+t.FrameW, y+t.FrameH)
}

var TextureAtlasComponent = NewComponent[TextureAtlas]()

// SpriteAnimator attaches an animation controller to an entity.
type SpriteAnimator struct {
	Controller *anim.Controller
	// Prefab is the prefab file the clips were built from, used for hot reload.
	Prefab string
	// Stalled is set after a NoFrames error for the current clip so the error
	// is logged once per selection instead of every tick.
	Stalled bool
}

// Play switches clips unless name is already playing. It reports whether a
// switch happened and the controller's error for unknown names.
func (a *SpriteAnimator) Play(name string) (bool, error) {
	if a == nil || a.Controller == nil {
		return false, nil
	}
	if a.Controller.CurrentName() == name && a.Controller.Has(name) {
		return false, nil
	}
	a.Stalled = false
	return true, a.Controller.SetCurrent(name)
}

var SpriteAnimatorComponent = NewComponent[SpriteAnimator]()
