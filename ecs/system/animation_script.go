package system

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const hurtTicks = 18

// animationChooseScript is appended to every animation script. Scripts define
// choose(state) and return the clip name to play.
const animationChooseScript = `
__clip = choose(__state)
`

// ScriptLoader returns the source of a named script.
type ScriptLoader func(path string) ([]byte, error)

// AnimationScriptSystem picks the clip of each scripted animator from its
// movement state.
type AnimationScriptSystem struct {
	load     ScriptLoader
	compiled map[string]*tengo.Compiled
	broken   map[string]bool
	hurt     map[ecs.Entity]int
}

func NewAnimationScriptSystem() *AnimationScriptSystem {
	return NewAnimationScriptSystemWithLoader(prefabs.LoadScript)
}

func NewAnimationScriptSystemWithLoader(load ScriptLoader) *AnimationScriptSystem {
	return &AnimationScriptSystem{
		load:     load,
		compiled: make(map[string]*tengo.Compiled),
		broken:   make(map[string]bool),
		hurt:     make(map[ecs.Entity]int),
	}
}

// Invalidate drops the compiled script at path so it is recompiled on next use.
// Paths are accepted with or without the "scripts/" prefix.
func (s *AnimationScriptSystem) Invalidate(path string) {
	path = strings.TrimPrefix(path, "scripts/")
	delete(s.compiled, path)
	delete(s.broken, path)
}

func (s *AnimationScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Peek(ecs.EventDamaged) {
		s.hurt[evt.Entity] = hurtTicks
	}
	for e, ticks := range s.hurt {
		if ticks <= 1 || !w.IsAlive(e) {
			delete(s.hurt, e)
			continue
		}
		s.hurt[e] = ticks - 1
	}

	ecs.ForEach2(w, component.AnimationScriptComponent.Kind(), component.SpriteAnimatorComponent.Kind(), func(e ecs.Entity, script *component.AnimationScript, animator *component.SpriteAnimator) {
		if animator.Controller == nil || strings.TrimSpace(script.Path) == "" || s.broken[script.Path] {
			return
		}
		compiled, err := s.getCompiled(script.Path)
		if err != nil {
			log.Printf("animation script: %s: %v", script.Path, err)
			// Not retried until the script is invalidated.
			s.broken[script.Path] = true
			return
		}

		clip, err := runChoose(compiled, animationState(w, e, s.hurt[e] > 0))
		if err != nil {
			log.Printf("animation script: %s: entity %s: %v", script.Path, e, err)
			return
		}
		if clip == "" {
			return
		}

		if script.Missing[clip] {
			return
		}
		if _, err := animator.Play(clip); err != nil {
			if errors.Is(err, anim.ErrDoesNotExist) {
				if script.Missing == nil {
					script.Missing = make(map[string]bool)
				}
				script.Missing[clip] = true
				w.Events().Push(ecs.Event{Type: ecs.EventClipMissing, Entity: e, Data: clip})
			}
			log.Printf("animation script: entity %s: %v", e, err)
		}
	})
}

func (s *AnimationScriptSystem) getCompiled(path string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[path]; ok {
		return c, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}
	c, err := CompileAnimationScript(src)
	if err != nil {
		return nil, err
	}
	s.compiled[path] = c
	return c, nil
}

// CompileAnimationScript compiles a script that defines choose(state).
func CompileAnimationScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + animationChooseScript))
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__clip", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func runChoose(c *tengo.Compiled, state map[string]any) (string, error) {
	if err := c.Set("__state", state); err != nil {
		return "", err
	}
	if err := c.Run(); err != nil {
		return "", err
	}
	v := c.Get("__clip")
	if v == nil || v.IsUndefined() {
		return "", nil
	}
	return strings.TrimSpace(v.String()), nil
}

// animationState is the map handed to choose(state).
func animationState(w *ecs.World, e ecs.Entity, hurt bool) map[string]any {
	state := map[string]any{
		"grounded": false,
		"vx":       0.0,
		"vy":       0.0,
		"move_x":   0.0,
		"alive":    !ecs.Has(w, e, component.DeadComponent.Kind()),
		"hurt":     hurt,
	}
	if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
		state["grounded"] = pc.Grounded || pc.GroundGrace > 0
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		state["vx"] = v.X
		state["vy"] = v.Y
	}
	if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		state["move_x"] = input.MoveX
	}
	return state
}
