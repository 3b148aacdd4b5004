package anim

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultFPS is the frame rate of a freshly constructed controller.
const DefaultFPS = 4.0

// FrameSink receives the frame index produced by a successful step.
type FrameSink interface {
	SetFrameIndex(index int)
}

// Controller plays clips from a named collection at a fixed frame rate.
//
// The collection always holds a clip under DefaultName, and the current clip is
// always a private copy of one of the collection's templates.
type Controller struct {
	collection map[string]*Clip
	current    *Clip
	fps        float64
	interval   time.Duration
	elapsed    time.Duration
}

// NewController creates a controller whose collection holds only the Default
// clip, playing at DefaultFPS.
func NewController() *Controller {
	def := DefaultClip()
	c := &Controller{
		collection: map[string]*Clip{DefaultName: def},
		current:    def.Clone(),
	}
	c.SetFPS(DefaultFPS)
	return c
}

// WithDefault replaces the clip played when a requested clip does not exist.
// The clip is stored under DefaultName whatever its own name is.
func (c *Controller) WithDefault(clip *Clip) *Controller {
	if clip == nil {
		return c
	}
	c.collection[DefaultName] = clip.Clone()
	return c
}

// WithClip adds a clip to the collection under its name.
func (c *Controller) WithClip(clip *Clip) *Controller {
	if clip == nil {
		return c
	}
	c.collection[clip.name] = clip.Clone()
	return c
}

// WithFPS sets the frame rate on construction.
func (c *Controller) WithFPS(fps float64) *Controller {
	c.SetFPS(fps)
	return c
}

// SetFPS changes the frame rate. Time already accumulated towards the next
// frame is kept. Rates that are not positive and finite are ignored.
func (c *Controller) SetFPS(fps float64) {
	if !(fps > 0) || math.IsInf(fps, 0) {
		return
	}
	c.fps = fps
	c.interval = time.Duration(float64(time.Second) / fps)
	if c.interval <= 0 {
		c.interval = 1
	}
}

func (c *Controller) FPS() float64 { return c.fps }

// Interval is the time between two frame advances.
func (c *Controller) Interval() time.Duration { return c.interval }

// Current returns the live clip instance. Mutating it (e.g. Reset) never
// affects the stored template.
func (c *Controller) Current() *Clip { return c.current }

// CurrentName returns the name of the playing clip.
func (c *Controller) CurrentName() string { return c.current.name }

// Has reports whether the collection holds a clip named name.
func (c *Controller) Has(name string) bool {
	_, ok := c.collection[name]
	return ok
}

// Names returns the collection keys in sorted order.
func (c *Controller) Names() []string {
	names := make([]string, 0, len(c.collection))
	for name := range c.collection {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent starts playing a fresh copy of the named clip. When the name is
// unknown the Default clip is played instead and ErrDoesNotExist is returned.
func (c *Controller) SetCurrent(name string) error {
	clip, ok := c.collection[name]
	if !ok {
		c.current = c.collection[DefaultName].Clone()
		return fmt.Errorf("%w: %q", ErrDoesNotExist, name)
	}
	c.current = clip.Clone()
	return nil
}

// Tick accumulates elapsed time and, once a full interval has passed, advances
// the current clip by exactly one frame and writes it to sink. Extra time beyond
// one interval is carried modulo the interval, so a long stall never plays
// several frames at once.
func (c *Controller) Tick(elapsed time.Duration, sink FrameSink) error {
	if elapsed > 0 {
		c.elapsed += elapsed
	}
	if c.elapsed < c.interval {
		return nil
	}
	c.elapsed %= c.interval

	frame, err := c.current.Advance()
	if err != nil {
		return err
	}
	if sink != nil {
		sink.SetFrameIndex(frame)
	}
	return nil
}
