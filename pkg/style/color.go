// Package style describes how builders paint their primitives: colors,
// blend modes, line styles and the material records with their per-builder
// defaults. A Theme bundles the defaults and can be loaded from YAML.
package style

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a 24-bit RGB color, 0xRRGGBB.
type Color uint32

// MaxColor is the largest valid Color.
const MaxColor Color = 0xFFFFFF

// ParseColor parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("style: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

// MustParseColor is ParseColor for constants; it panics on bad input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether c fits in 24 bits.
func (c Color) Valid() bool {
	return c <= MaxColor
}

// RGB returns the components in [0, 1].
func (c Color) RGB() (r, g, b float64) {
	return float64(c>>16&0xFF) / 255, float64(c>>8&0xFF) / 255, float64(c&0xFF) / 255
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return colorful.Color{R: r, G: g, B: b}.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("style: color %#x out of range", uint32(c))
	}
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalYAML accepts "#rrggbb" strings and plain integers.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var v uint32
		if err := node.Decode(&v); err != nil {
			return err
		}
		if Color(v) > MaxColor {
			return fmt.Errorf("style: color %#x out of range", v)
		}
		*c = Color(v)
		return nil
	}
	return c.UnmarshalText([]byte(node.Value))
}

// MarshalYAML writes the "#rrggbb" form.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}
