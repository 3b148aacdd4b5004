package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/prefabs"
)

const (
	viewerWidth  = 512
	viewerHeight = 512
)

// unknownClip is selected by the digit after the last clip. It is never a clip
// name, so the controller falls back to Default.
const unknownClip = "?"

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// viewer plays the sprite_animator of one prefab.
type viewer struct {
	prefab     string
	scale      float64
	controller *anim.Controller
	atlas      *component.TextureAtlas
	selected   string
	stalled    bool
	watcher    *prefabs.Watcher
}

func newViewer(prefab string, scale float64) (*viewer, error) {
	v := &viewer{prefab: prefab, scale: scale}
	if err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) load() error {
	spec, err := prefabs.LoadEntityBuildSpec(v.prefab)
	if err != nil {
		return err
	}
	raw, ok := spec.Components["sprite_animator"]
	if !ok {
		return fmt.Errorf("%s: %w", v.prefab, entity.ErrNoAnimator)
	}
	animSpec, err := prefabs.DecodeComponentSpec[prefabs.SpriteAnimatorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("%s: decode sprite animator: %w", v.prefab, err)
	}
	controller, err := entity.NewAnimationController(animSpec)
	if err != nil {
		return fmt.Errorf("%s: %w", v.prefab, err)
	}
	atlas, err := entity.NewTextureAtlas(animSpec)
	if err != nil {
		return fmt.Errorf("%s: %w", v.prefab, err)
	}

	if v.selected != "" && controller.Has(v.selected) {
		_ = controller.SetCurrent(v.selected)
	}
	v.controller = controller
	v.atlas = atlas
	v.selected = controller.CurrentName()
	v.stalled = false
	return nil
}

func (v *viewer) Update() error {
	v.pollWatcher()

	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			v.selectKey(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		v.controller.SetFPS(v.controller.FPS() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && v.controller.FPS() > 1 {
		v.controller.SetFPS(v.controller.FPS() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.controller.Current().Reset()
	}

	if err := v.controller.Tick(common.TickDelta, v.atlas); err != nil {
		if !errors.Is(err, anim.ErrNoFrames) || !v.stalled {
			log.Printf("spsa: clip %q: %v", v.controller.CurrentName(), err)
		}
		v.stalled = errors.Is(err, anim.ErrNoFrames)
	}
	return nil
}

// selectKey plays the clip bound to digit key i. Keys follow the sorted clip
// names; the key after the last one asks for unknownClip.
func (v *viewer) selectKey(i int) bool {
	names := v.controller.Names()
	switch {
	case i < len(names):
		v.selected = names[i]
	case i == len(names):
		v.selected = unknownClip
	default:
		return false
	}
	v.stalled = false
	if err := v.controller.SetCurrent(v.selected); err != nil {
		log.Printf("spsa: %v", err)
	}
	return true
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	for _, name := range v.watcher.Poll() {
		if name != prefabs.RelativeName(v.prefab) {
			continue
		}
		if err := v.load(); err != nil {
			log.Printf("spsa: reload: %v", err)
			continue
		}
		log.Printf("spsa: reloaded %s", name)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})

	if v.atlas.Sheet != nil {
		frame := v.atlas.Sheet.SubImage(v.atlas.Rect()).(*ebiten.Image)
		fw := float64(v.atlas.FrameW) * v.scale
		fh := float64(v.atlas.FrameH) * v.scale
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.scale, v.scale)
		op.GeoM.Translate((viewerWidth-fw)/2, (viewerHeight-fh)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(frame, op)
	}

	ebitenutil.DebugPrintAt(screen, v.status(), 8, 8)
}

func (v *viewer) status() string {
	var b strings.Builder
	cur := v.controller.Current()
	fmt.Fprintf(&b, "%s\n", v.prefab)
	fmt.Fprintf(&b, "clip: %s (%s)  cursor: %d/%d  frame: %d\n", cur.Name(), cur.Mode(), cur.Cursor(), cur.Len(), v.atlas.Index)
	if v.selected != cur.Name() {
		fmt.Fprintf(&b, "selected %s, playing fallback\n", v.selected)
	}
	fmt.Fprintf(&b, "fps: %.0f  (up/down)  R: reset\n", v.controller.FPS())
	names := v.controller.Names()
	for i, name := range names {
		if i >= len(digitKeys) {
			break
		}
		marker := " "
		if name == cur.Name() {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %d %s\n", marker, i+1, name)
	}
	if len(names) < len(digitKeys) {
		fmt.Fprintf(&b, "  %d (unknown clip)\n", len(names)+1)
	}
	return b.String()
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewerWidth, viewerHeight
}

func main() {
	prefab := flag.String("prefab", "player.yaml", "prefab whose sprite_animator is shown")
	scale := flag.Float64("scale", 4, "draw scale of the frame")
	watch := flag.Bool("watch", true, "reload the prefab when it changes on disk")
	flag.Parse()

	if *scale <= 0 {
		*scale = 1
	}

	v, err := newViewer(*prefab, *scale)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("spsa: hot reload disabled: %v", err)
		} else {
			v.watcher = watcher
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(viewerWidth, viewerHeight)
	ebiten.SetWindowTitle("spsa - " + *prefab)
	ebiten.SetTPS(common.TPS)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
