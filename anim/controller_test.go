package anim

import (
	"errors"
	"math"
	"testing"
	"time"
)

type recordingSink struct {
	frames []int
}

func (r *recordingSink) SetFrameIndex(index int) {
	r.frames = append(r.frames, index)
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController()
	if !c.Has(DefaultName) {
		t.Fatalf("expected Default clip in a new controller")
	}
	if c.FPS() != DefaultFPS {
		t.Fatalf("expected fps %v, got %v", DefaultFPS, c.FPS())
	}
	if c.Interval() != 250*time.Millisecond {
		t.Fatalf("expected 250ms interval, got %v", c.Interval())
	}
	if c.CurrentName() != DefaultName {
		t.Fatalf("expected Default to be current, got %q", c.CurrentName())
	}
}

func TestControllerSetCurrent(t *testing.T) {
	newController := func() *Controller {
		return NewController().WithClip(NewClip("Idle", []int{1, 2, 3}))
	}

	t.Run("known_clip", func(t *testing.T) {
		c := newController()
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.CurrentName() != "Idle" || c.Current().Cursor() != 0 {
			t.Fatalf("expected fresh Idle, got %q cursor=%d", c.CurrentName(), c.Current().Cursor())
		}
	})

	t.Run("unknown_falls_back", func(t *testing.T) {
		c := newController()
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatal(err)
		}
		err := c.SetCurrent("Walk")
		if !errors.Is(err, ErrDoesNotExist) {
			t.Fatalf("expected ErrDoesNotExist, got %v", err)
		}
		if c.CurrentName() != DefaultName {
			t.Fatalf("expected Default after fallback, got %q", c.CurrentName())
		}
		for i := 0; i < 4; i++ {
			if f, err := c.Current().Advance(); err != nil || f != 0 {
				t.Fatalf("expected default frame 0, got %d err=%v", f, err)
			}
		}
	})

	t.Run("copy_not_alias", func(t *testing.T) {
		c := newController()
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Current().Advance(); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Current().Advance(); err != nil {
			t.Fatal(err)
		}
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatal(err)
		}
		if f, _ := c.Current().Advance(); f != 1 {
			t.Fatalf("expected reselected clip to start at frame 1, got %d", f)
		}
	})

	t.Run("builder_clip_is_copied", func(t *testing.T) {
		clip := NewClip("Run", []int{8, 9, 10})
		c := NewController().WithClip(clip)
		if _, err := clip.Advance(); err != nil {
			t.Fatal(err)
		}
		if err := c.SetCurrent("Run"); err != nil {
			t.Fatal(err)
		}
		if f, _ := c.Current().Advance(); f != 8 {
			t.Fatalf("collection aliased the caller's clip, got frame %d", f)
		}
	})
}

func TestControllerWithDefault(t *testing.T) {
	idle := NewClip("Idle", []int{1, 2, 3})
	c := NewController().WithClip(idle).WithDefault(idle)
	if err := c.SetCurrent("Missing"); !errors.Is(err, ErrDoesNotExist) {
		t.Fatalf("expected ErrDoesNotExist, got %v", err)
	}
	sink := &recordingSink{}
	for i := 0; i < 4; i++ {
		if err := c.Tick(c.Interval(), sink); err != nil {
			t.Fatal(err)
		}
	}
	want := []int{1, 2, 3, 1}
	if !equalInts(sink.frames, want) {
		t.Fatalf("expected overridden default %v, got %v", want, sink.frames)
	}
}

func TestControllerTick(t *testing.T) {
	t.Run("fires_once_per_interval", func(t *testing.T) {
		c := NewController().WithClip(NewClip("Idle", []int{1, 2, 3}))
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatal(err)
		}
		sink := &recordingSink{}
		step := c.Interval() / 4
		for i := 0; i < 12; i++ {
			if err := c.Tick(step, sink); err != nil {
				t.Fatal(err)
			}
		}
		if !equalInts(sink.frames, []int{1, 2, 3}) {
			t.Fatalf("expected 1,2,3 after three intervals, got %v", sink.frames)
		}
	})

	t.Run("spike_steps_once", func(t *testing.T) {
		c := NewController().WithClip(NewClip("Idle", []int{1, 2, 3}))
		if err := c.SetCurrent("Idle"); err != nil {
			t.Fatal(err)
		}
		sink := &recordingSink{}
		if err := c.Tick(10*c.Interval(), sink); err != nil {
			t.Fatal(err)
		}
		if err := c.Tick(0, sink); err != nil {
			t.Fatal(err)
		}
		if !equalInts(sink.frames, []int{1}) {
			t.Fatalf("expected exactly one frame after a spike, got %v", sink.frames)
		}
	})

	t.Run("no_frames_writes_nothing", func(t *testing.T) {
		c := NewController().WithClip(NewClip("Broken", nil))
		if err := c.SetCurrent("Broken"); err != nil {
			t.Fatal(err)
		}
		sink := &recordingSink{}
		for i := 0; i < 3; i++ {
			if err := c.Tick(c.Interval(), sink); !errors.Is(err, ErrNoFrames) {
				t.Fatalf("expected ErrNoFrames, got %v", err)
			}
		}
		if len(sink.frames) != 0 {
			t.Fatalf("expected no frames written, got %v", sink.frames)
		}
	})

	t.Run("nil_sink", func(t *testing.T) {
		c := NewController()
		if err := c.Tick(time.Second, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestControllerSetFPS(t *testing.T) {
	t.Run("rate_change_keeps_cursor", func(t *testing.T) {
		c := NewController().WithClip(NewClip("Run", []int{8, 9, 10, 11, 12, 13}))
		if err := c.SetCurrent("Run"); err != nil {
			t.Fatal(err)
		}
		sink := &recordingSink{}
		for i := 0; i < 2; i++ {
			if err := c.Tick(250*time.Millisecond, sink); err != nil {
				t.Fatal(err)
			}
		}
		c.SetFPS(8)
		if c.Current().Cursor() != 2 {
			t.Fatalf("expected cursor 2 after rate change, got %d", c.Current().Cursor())
		}
		if c.Interval() != 125*time.Millisecond {
			t.Fatalf("expected 125ms interval, got %v", c.Interval())
		}
		if err := c.Tick(125*time.Millisecond, sink); err != nil {
			t.Fatal(err)
		}
		if !equalInts(sink.frames, []int{8, 9, 10}) {
			t.Fatalf("expected 8,9,10, got %v", sink.frames)
		}
	})

	t.Run("keeps_accumulated_time", func(t *testing.T) {
		c := NewController()
		sink := &recordingSink{}
		if err := c.Tick(100*time.Millisecond, sink); err != nil {
			t.Fatal(err)
		}
		c.SetFPS(8)
		if err := c.Tick(25*time.Millisecond, sink); err != nil {
			t.Fatal(err)
		}
		if len(sink.frames) != 1 {
			t.Fatalf("expected accumulated time to carry over, got %v", sink.frames)
		}
	})

	t.Run("invalid_rates_ignored", func(t *testing.T) {
		for _, fps := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
			c := NewController().WithFPS(12)
			c.SetFPS(fps)
			if c.FPS() != 12 || c.Interval() != time.Second/12 {
				t.Fatalf("SetFPS(%v): expected 12 fps at %v, got %v fps at %v", fps, time.Second/12, c.FPS(), c.Interval())
			}
		}
	})

	t.Run("with_fps_sets_interval", func(t *testing.T) {
		c := NewController().WithFPS(10)
		if c.Interval() != 100*time.Millisecond {
			t.Fatalf("expected 100ms interval, got %v", c.Interval())
		}
	})
}

func TestControllerNames(t *testing.T) {
	c := NewController().
		WithClip(NewClip("Run", []int{1})).
		WithClip(NewClip("Idle", []int{2}))
	want := []string{"Default", "Idle", "Run"}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
