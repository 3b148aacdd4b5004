package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
)

// images caches decoded sheets by key. Sheets shared by many entities (the
// tileset, heart pickups) are decoded and uploaded once.
var images = map[string]*ebiten.Image{}

// LoadImage returns the cached image for key, loading it from the embedded
// assets or, failing that, from disk.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img, ok := images[key]; ok {
		return img, nil
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		img, err = loadImageFromDisk(key)
		if err != nil {
			return nil, err
		}
	}
	images[key] = img
	return img, nil
}

func loadImageFromDisk(path string) (*ebiten.Image, error) {
	for _, p := range []string{path, filepath.Join("assets", path)} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	return nil, fmt.Errorf("render: image %s not found", path)
}
