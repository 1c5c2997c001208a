// Package assets loads the sprite sheet that gives each animal kind its
// face on screen. Loading the sheet is what marks a session's assets as
// ready.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/same-animal/internal/core"
)

//go:embed sprites.yaml
var defaultSpritesYAML []byte

// ErrEmptySheet is returned when a sprite file defines no sprites.
var ErrEmptySheet = errors.New("assets: sprite sheet is empty")

// Sprite is the face of one animal kind.
type Sprite struct {
	Label string     `yaml:"label"`
	Glyph string     `yaml:"glyph"`
	Color string     `yaml:"color"`
	Tint  core.Color `yaml:"-"`
}

// Sheet maps kind names to sprites.
type Sheet struct {
	Fallback Sprite            `yaml:"fallback"`
	Sprites  map[string]Sprite `yaml:"sprites"`
}

// Load parses the sprite sheet at customPath, or the embedded default
// when customPath is empty.
func Load(customPath string) (*Sheet, error) {
	data := defaultSpritesYAML
	if customPath != "" {
		b, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to read %s: %w", customPath, err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a sprite sheet and resolves its colors.
func Parse(data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: failed to parse sprites: %w", err)
	}
	if len(sheet.Sprites) == 0 {
		return nil, ErrEmptySheet
	}

	for name, sp := range sheet.Sprites {
		tint, err := resolve(name, sp.Color)
		if err != nil {
			return nil, err
		}
		sp.Tint = tint
		if sp.Label == "" {
			sp.Label = name
		}
		sheet.Sprites[name] = sp
	}

	if sheet.Fallback.Glyph == "" {
		sheet.Fallback = Sprite{Label: "?", Glyph: "?", Color: "gray"}
	}
	tint, err := resolve("fallback", sheet.Fallback.Color)
	if err != nil {
		return nil, err
	}
	sheet.Fallback.Tint = tint

	return &sheet, nil
}

func resolve(name, color string) (core.Color, error) {
	if color == "" {
		return core.ColorDefault, nil
	}
	c, ok := core.ParseColor(color)
	if !ok {
		return core.ColorDefault, fmt.Errorf("assets: sprite %s: unknown color %q", name, color)
	}
	return c, nil
}

// Sprite returns the sprite for kind, or the fallback sprite labelled
// with the kind name.
func (s *Sheet) Sprite(kind string) Sprite {
	if sp, ok := s.Sprites[kind]; ok {
		return sp
	}
	sp := s.Fallback
	sp.Label = kind
	return sp
}

// Has reports whether kind has its own sprite.
func (s *Sheet) Has(kind string) bool {
	_, ok := s.Sprites[kind]
	return ok
}

// Missing returns the kinds with no sprite, sorted.
func (s *Sheet) Missing(kinds []string) []string {
	var out []string
	for _, k := range kinds {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
