package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	UseSource          bool    `yaml:"use_source"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string     `yaml:"target_name"`
	Zoom       float64    `yaml:"zoom"`
	Smoothness float64    `yaml:"smoothness"`
	ZoomStep   float64    `yaml:"zoom_step"`
	MinZoom    float64    `yaml:"min_zoom"`
	MaxZoom    float64    `yaml:"max_zoom"`
	Background *YAMLColor `yaml:"background"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Sensor        bool    `yaml:"sensor"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	AlignTopLeft  bool    `yaml:"align_top_left"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type CharacterControllerComponentSpec struct {
	Acceleration float64 `yaml:"acceleration"`
	Damping      float64 `yaml:"damping"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxSlopeDeg  float64 `yaml:"max_slope_deg"`
	MaxSpeed     float64 `yaml:"max_speed"`
}

type HealthComponentSpec struct {
	Maximum int `yaml:"maximum"`
	// Current defaults to Maximum when zero.
	Current int `yaml:"current"`
}

type FactorComponentSpec struct {
	Value int `yaml:"value"`
}

type HazardComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Cooldown int     `yaml:"cooldown"`
}

type PickupComponentSpec struct {
	Kind            string  `yaml:"kind"`
	BobAmplitude    float64 `yaml:"bob_amplitude"`
	BobSpeed        float64 `yaml:"bob_speed"`
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`
}

type AnimationScriptComponentSpec struct {
	Script string `yaml:"script"`
}

// ClipSpec describes one animation clip: frame indices into the sheet grid and
// a playback mode (repeating, once or mirror).
type ClipSpec struct {
	Frames []int  `yaml:"frames"`
	Mode   string `yaml:"mode"`
}

// DefaultClipSpec is either the name of a clip in the same spec or an inline
// clip.
type DefaultClipSpec struct {
	Name string
	Clip *ClipSpec
}

func (d *DefaultClipSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		d.Name = value.Value
		return nil
	case yaml.MappingNode:
		var clip ClipSpec
		if err := value.Decode(&clip); err != nil {
			return err
		}
		d.Clip = &clip
		return nil
	default:
		return fmt.Errorf("default clip must be a clip name or a clip")
	}
}

type SpriteAnimatorComponentSpec struct {
	Sheet   string              `yaml:"sheet"`
	FrameW  int                 `yaml:"frame_w"`
	FrameH  int                 `yaml:"frame_h"`
	Columns int                 `yaml:"columns"`
	FPS     float64             `yaml:"fps"`
	Default *DefaultClipSpec    `yaml:"default"`
	Current string              `yaml:"current"`
	Clips   map[string]ClipSpec `yaml:"clips"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
	// Cues maps an event type (damaged, died, picked_up, healed) to a clip name.
	Cues map[string]string `yaml:"cues"`
}
