package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned for a color that is not "#rrggbb" or "#rrggbbaa".
var ErrInvalidColor = errors.New("prefabs: invalid color")

// LoadSpec decodes a prefab file into T. Top-level keys T does not declare are
// rejected so a misspelled section fails loudly instead of being dropped.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	data, err := Load(filename)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return spec, fmt.Errorf("prefabs: %s is empty", filename)
		}
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa"; the leading "#" is optional.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a string: %w", value.Line, ErrInvalidColor)
	}

	hex := strings.TrimPrefix(value.Value, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fmt.Errorf("line %d: color %q needs 6 or 8 hex digits: %w", value.Line, value.Value, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fmt.Errorf("line %d: color %q is not hex: %w", value.Line, value.Value, ErrInvalidColor)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}

	c.Color = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}
