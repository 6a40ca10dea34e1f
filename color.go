package biome

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a palette token such as "#2db88a". It is parsed once when the
// scene is composed.
type Color struct {
	Hex string
	RGB colorful.Color
}

func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidScene, hex, err)
	}
	return Color{Hex: hex, RGB: c}, nil
}

func MustColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string { return c.Hex }

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var hex string
	if err := node.Decode(&hex); err != nil {
		return err
	}
	if hex == "" {
		*c = Color{}
		return nil
	}
	parsed, err := ParseColor(hex)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex, nil
}

// Palette is an ordered list of colors. At cycles through it by index.
type Palette []Color

func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return Color{}
	}
	return p[i%len(p)]
}
