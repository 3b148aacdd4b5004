package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Config is the command-line configuration of a game.
type Config struct {
	LevelName string
	Debug     bool
	Mute      bool
	Watch     bool
}

type Game struct {
	cfg Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scripts   *system.AnimationScriptSystem
	render    *system.RenderSystem
	debug     *system.DebugSystem
	watcher   *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.LevelName == "" {
		cfg.LevelName = levels.DefaultLevel
	}
	entity.AudioEnabled = !cfg.Mute

	g := &Game{
		cfg:     cfg,
		physics: system.NewPhysicsSystem(),
		scripts: system.NewAnimationScriptSystem(),
		render:  system.NewRenderSystem(),
	}
	g.debug = system.NewDebugSystem(g.physics, cfg.Debug)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// loadLevel builds a fresh world from the configured level.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.cfg.LevelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", g.cfg.LevelName, err)
	}

	world := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return fmt.Errorf("populate level %q: %w", g.cfg.LevelName, err)
	}

	g.physics.Reset()
	g.world = world
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewLevelSetupSystem(),
		system.NewCharacterControllerSystem(),
		g.physics,
		system.NewContactSystem(),
		system.NewPickupHoverSystem(),
		system.NewHealthSystem(),
		g.scripts,
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewAudioSystem(g.cfg.Mute),
		g.debug,
	)
	log.Printf("level: loaded %s (%dx%d)", g.cfg.LevelName, lvl.Width, lvl.Height)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug.Toggle()
	}
	g.pollWatcher()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.playerDead() {
		if err := g.loadLevel(); err != nil {
			log.Printf("level: reload: %v", err)
		}
	}

	g.world.SetDelta(common.TickDelta)
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) playerDead() bool {
	player, ok := g.world.First(component.PlayerTagComponent.Kind())
	return ok && ecs.Has(g.world, player, component.DeadComponent.Kind())
}

// pollWatcher applies prefab and script edits reported since the last tick.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch {
		case prefabs.IsScriptFile(name):
			g.scripts.Invalidate(name)
			log.Printf("prefabs: reloaded script %s", name)
		case prefabs.IsSpecFile(name):
			n, err := entity.ReloadPrefabAnimators(g.world, name)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
				continue
			}
			log.Printf("prefabs: reloaded %s (%d animators)", name, n)
		}
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())
	g.render.Draw(g.world, screen)
	g.debug.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) background() color.Color {
	if camEntity, ok := g.world.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(g.world, camEntity, component.CameraComponent.Kind()); ok && cam.Background != nil {
			return cam.Background
		}
	}
	return color.Black
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close stops the prefab watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
		g.watcher = nil
	}
}
