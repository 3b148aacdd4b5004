package levels

import (
	"errors"
	"testing"
)

func TestLoadDefaultLevel(t *testing.T) {
	lvl, err := Load(DefaultLevel)
	if err != nil {
		t.Fatalf("load %s: %v", DefaultLevel, err)
	}
	if lvl.TileSize != 24 {
		t.Fatalf("expected 24px tiles, got %d", lvl.TileSize)
	}
	counts := map[string]int{}
	for _, e := range lvl.Entities {
		counts[e.Type]++
	}
	if counts["player"] != 1 || counts["camera"] != 1 {
		t.Fatalf("expected one player and one camera, got %v", counts)
	}
	if counts["spike"] == 0 || counts["heart"] == 0 {
		t.Fatalf("expected spikes and hearts, got %v", counts)
	}
	// The bottom row is floor.
	for x := 0; x < lvl.Width; x++ {
		if !lvl.Collidable(x, lvl.Height-1) {
			t.Fatalf("expected floor at column %d", x)
		}
	}
}

func TestLevelCells(t *testing.T) {
	lvl := &Level{
		Width:    3,
		Height:   2,
		TileSize: 24,
		IntGrid:  []int{0, 1, 0, 1, 1, 2},
		Tiles:    []int{0, 1, 0, 2, 2, 3},
	}
	if err := lvl.Validate(); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y      int
		collide   bool
		tileIndex int
	}{
		{0, 0, false, -1},
		{1, 0, true, 0},
		{2, 1, false, 2},
		{-1, 0, false, -1},
		{3, 0, false, -1},
		{0, 2, false, -1},
	}
	for _, c := range cases {
		if got := lvl.Collidable(c.x, c.y); got != c.collide {
			t.Fatalf("Collidable(%d,%d) = %v, want %v", c.x, c.y, got, c.collide)
		}
		if got := lvl.Tile(c.x, c.y); got != c.tileIndex {
			t.Fatalf("Tile(%d,%d) = %d, want %d", c.x, c.y, got, c.tileIndex)
		}
	}
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := map[string]string{
		"empty_size":   `{"width":0,"height":2,"tile_size":24,"int_grid":[]}`,
		"no_tile_size": `{"width":1,"height":1,"int_grid":[0]}`,
		"short_grid":   `{"width":2,"height":2,"tile_size":24,"int_grid":[0,0,0]}`,
		"short_tiles":  `{"width":1,"height":2,"tile_size":24,"int_grid":[0,1],"tiles":[1]}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatalf("expected a json error")
	}
}

func TestLoadMissingLevel(t *testing.T) {
	if _, err := Load("nope.json"); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}

func TestLoadWithoutExtension(t *testing.T) {
	lvl, err := Load("level_1")
	if err != nil {
		t.Fatalf("expected .json to be optional: %v", err)
	}
	if lvl.Width != 48 {
		t.Fatalf("expected level_1, got width %d", lvl.Width)
	}
}
