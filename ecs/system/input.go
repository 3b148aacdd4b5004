package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InputSource abstracts the device state read each tick so the system can be
// driven without a window.
type InputSource interface {
	MoveX() float64
	Jump() (held bool, pressed bool)
	Wheel() float64
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem() *InputSystem {
	return &InputSystem{source: ebitenInput{}}
}

// NewInputSystemWithSource builds an input system reading from src.
func NewInputSystemWithSource(src InputSource) *InputSystem {
	return &InputSystem{source: src}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	moveX := i.source.MoveX()
	jump, jumpPressed := i.source.Jump()
	zoom := i.source.Wheel()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.Jump = jump
		input.JumpPressed = jumpPressed
		input.Zoom = zoom
	})
}

type ebitenInput struct{}

const stickDeadzone = 0.2

func (ebitenInput) MoveX() float64 {
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		leftX := ebiten.StandardGamepadAxisValue(gamepads[0], ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
	}
	return moveX
}

func (ebitenInput) Jump() (bool, bool) {
	held := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	pressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		held = held || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		pressed = pressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return held, pressed
}

func (ebitenInput) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}
