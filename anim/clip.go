package anim

import (
	"fmt"
	"strings"
)

// DefaultName is the reserved collection key of the fallback clip.
const DefaultName = "Default"

// Mode selects how a clip's cursor moves after each frame.
type Mode int

const (
	// Repeating loops back to the first frame after the last one.
	Repeating Mode = iota
	// Once stops on the last frame.
	Once
	// Mirror plays forward to the end, then backward to the start, forever.
	Mirror
)

func (m Mode) String() string {
	switch m {
	case Repeating:
		return "repeating"
	case Once:
		return "once"
	case Mirror:
		return "mirror"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a prefab mode string into a Mode. An empty string is
// Repeating.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repeating", "repeat", "loop":
		return Repeating, nil
	case "once":
		return Once, nil
	case "mirror", "pingpong", "ping_pong":
		return Mirror, nil
	default:
		return Repeating, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Clip is a named frame sequence plus the cursor state needed to step it.
//
//	idle := anim.NewClip("Idle", []int{0, 1, 2, 3})
//	attack := anim.NewClip("Attack", []int{4, 5, 6, 7}).WithMode(anim.Once)
type Clip struct {
	name    string
	frames  []int
	mode    Mode
	cursor  int
	forward bool
}

// NewClip creates a Repeating clip. The frames slice is copied.
func NewClip(name string, frames []int) *Clip {
	return &Clip{
		name:    name,
		frames:  append([]int(nil), frames...),
		mode:    Repeating,
		forward: true,
	}
}

// DefaultClip is the single-frame Once clip that always yields frame 0.
func DefaultClip() *Clip {
	return NewClip(DefaultName, []int{0}).WithMode(Once)
}

// WithMode sets the playback mode on construction.
func (c *Clip) WithMode(mode Mode) *Clip {
	c.mode = mode
	return c
}

func (c *Clip) Name() string { return c.name }

func (c *Clip) Mode() Mode { return c.mode }

// Cursor is the index of the frame the next Advance returns.
func (c *Clip) Cursor() int { return c.cursor }

// Frames returns a copy of the frame sequence.
func (c *Clip) Frames() []int {
	return append([]int(nil), c.frames...)
}

// Len returns the number of frames.
func (c *Clip) Len() int { return len(c.frames) }

// Clone returns an independent instance with a fresh cursor.
func (c *Clip) Clone() *Clip {
	return &Clip{
		name:    c.name,
		frames:  append([]int(nil), c.frames...),
		mode:    c.mode,
		forward: true,
	}
}

// Reset starts the clip over. The Mirror direction is left as is; Advance
// forces it forward again once the cursor sits on frame 0.
func (c *Clip) Reset() {
	c.cursor = 0
}

// Advance returns the frame under the cursor and moves the cursor for the next
// call according to the clip's mode.
func (c *Clip) Advance() (int, error) {
	if len(c.frames) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoFrames, c.name)
	}
	if len(c.frames) == 1 {
		return c.frames[0], nil
	}

	frame := c.frames[c.cursor]
	last := len(c.frames) - 1

	switch c.mode {
	case Once:
		if c.cursor < last {
			c.cursor++
		}
	case Mirror:
		if c.cursor == 0 {
			c.forward = true
		} else if c.cursor == last {
			c.forward = false
		}
		if c.forward {
			c.cursor++
		} else if c.cursor > 0 {
			c.cursor--
		}
	default:
		if c.cursor < last {
			c.cursor++
		} else {
			c.cursor = 0
		}
	}

	return frame, nil
}
