package anim

import "errors"

var (
	// ErrNoFrames is returned by Advance on a clip without frames.
	ErrNoFrames = errors.New("anim: clip has no frames")
	// ErrDoesNotExist is returned by SetCurrent for an unknown clip name. The
	// controller has already switched to the Default clip when it is returned.
	ErrDoesNotExist = errors.New("anim: clip does not exist, playing default")
	ErrUnknownMode  = errors.New("anim: unknown playback mode")
)
