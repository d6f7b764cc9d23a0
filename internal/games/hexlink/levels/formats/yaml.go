// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Tiles       []YAMLTile        `yaml:"tiles"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLTile represents a single tile in YAML format.
type YAMLTile struct {
	ID       int    `yaml:"id"`
	Q        int    `yaml:"q"`
	R        int    `yaml:"r"`
	Kind     string `yaml:"kind"`
	Rotation int    `yaml:"rotation,omitempty"`
	Fixed    bool   `yaml:"fixed,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Description string
	Layout      core.Layout
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file. Unknown tile kinds and structurally
// invalid layouts are errors.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing level id")
	}

	layout := core.Layout{
		ID:    yl.ID,
		Name:  yl.Name,
		Tiles: make([]core.TileSpec, 0, len(yl.Tiles)),
	}
	for i, t := range yl.Tiles {
		kind, ok := core.ParseKind(t.Kind)
		if !ok {
			return Level{}, fmt.Errorf("tile #%d: unknown kind %q", i, t.Kind)
		}
		layout.Tiles = append(layout.Tiles, core.TileSpec{
			ID:       core.TileID(t.ID),
			Pos:      core.C(t.Q, t.R),
			Kind:     kind,
			Rotation: t.Rotation,
			Fixed:    t.Fixed,
		})
	}

	if err := layout.Validate(); err != nil {
		return Level{}, err
	}

	return Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Layout:      layout,
		Metadata:    yl.Metadata,
	}, nil
}

// MarshalYAML renders a layout in the level file format.
func MarshalYAML(l core.Layout, description string) ([]byte, error) {
	yl := YAMLLevel{
		ID:          l.ID,
		Name:        l.Name,
		Description: description,
		Tiles:       make([]YAMLTile, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		yl.Tiles[i] = YAMLTile{
			ID:       int(t.ID),
			Q:        t.Pos.Q,
			R:        t.Pos.R,
			Kind:     t.Kind.String(),
			Rotation: t.Rotation,
			Fixed:    t.Fixed && !t.Kind.AlwaysFixed(),
		}
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
