package style

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BlendMode selects how a surface combines with what is behind it.
type BlendMode int

const (
	BlendNormal   BlendMode = iota // alpha blending
	BlendAdditive                  // color added to the background, for glows
)

func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BlendMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BlendMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal", "":
		*b = BlendNormal
	case "additive":
		*b = BlendAdditive
	default:
		return fmt.Errorf("style: unknown blend mode %q", text)
	}
	return nil
}

// UnmarshalYAML decodes the text form.
func (b *BlendMode) UnmarshalYAML(node *yaml.Node) error {
	return b.UnmarshalText([]byte(node.Value))
}

// MarshalYAML writes the text form.
func (b BlendMode) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// LineStyle selects solid or dashed curves.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
)

func (s LineStyle) String() string {
	switch s {
	case LineSolid:
		return "solid"
	case LineDashed:
		return "dashed"
	default:
		return fmt.Sprintf("LineStyle(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s LineStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LineStyle) UnmarshalText(text []byte) error {
	switch string(text) {
	case "solid", "":
		*s = LineSolid
	case "dashed":
		*s = LineDashed
	default:
		return fmt.Errorf("style: unknown line style %q", text)
	}
	return nil
}

// UnmarshalYAML decodes the text form.
func (s *LineStyle) UnmarshalYAML(node *yaml.Node) error {
	return s.UnmarshalText([]byte(node.Value))
}

// MarshalYAML writes the text form.
func (s LineStyle) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Material is the surface description attached to every solid.
type Material struct {
	Color             Color     `json:"color" yaml:"color"`                          // tint
	Opacity           float64   `json:"opacity" yaml:"opacity"`                      // blend alpha, 1 = opaque
	EmissiveIntensity float64   `json:"emissiveIntensity" yaml:"emissive_intensity"` // self-illumination in Color, 0 = none
	Shininess         float64   `json:"shininess" yaml:"shininess"`                  // specular exponent
	Wireframe         bool      `json:"wireframe" yaml:"wireframe"`                  // draw edges only
	DoubleSided       bool      `json:"doubleSided" yaml:"double_sided"`             // no back-face culling
	Blend             BlendMode `json:"blend" yaml:"blend"`
}

// Transparent reports whether the renderer must sort and blend this surface.
func (m Material) Transparent() bool {
	return m.Opacity < 1 || m.Blend == BlendAdditive
}

// WithColor returns a copy tinted with c.
func (m Material) WithColor(c Color) Material {
	m.Color = c
	return m
}

// InvalidMaterialError reports an out-of-range material field.
type InvalidMaterialError struct {
	Field  string
	Reason string
}

func (e *InvalidMaterialError) Error() string {
	return fmt.Sprintf("style: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks ranges.
func (m Material) Validate() error {
	if !m.Color.Valid() {
		return &InvalidMaterialError{Field: "color", Reason: fmt.Sprintf("%#x exceeds 24 bits", uint32(m.Color))}
	}
	if !(m.Opacity >= 0 && m.Opacity <= 1) {
		return &InvalidMaterialError{Field: "opacity", Reason: fmt.Sprintf("%v not in [0,1]", m.Opacity)}
	}
	if !(m.EmissiveIntensity >= 0) {
		return &InvalidMaterialError{Field: "emissive intensity", Reason: fmt.Sprintf("%v is negative", m.EmissiveIntensity)}
	}
	if !(m.Shininess >= 0) {
		return &InvalidMaterialError{Field: "shininess", Reason: fmt.Sprintf("%v is negative", m.Shininess)}
	}
	if m.Blend != BlendNormal && m.Blend != BlendAdditive {
		return &InvalidMaterialError{Field: "blend", Reason: m.Blend.String()}
	}
	return nil
}

// LineMaterial describes how a curve is stroked.
type LineMaterial struct {
	Color   Color     `json:"color" yaml:"color"`
	Opacity float64   `json:"opacity" yaml:"opacity"`
	Style   LineStyle `json:"style" yaml:"style"`
	Dash    float64   `json:"dash" yaml:"dash"` // dash length, dashed style only
	Gap     float64   `json:"gap" yaml:"gap"`   // gap length, dashed style only
}

// WithColor returns a copy tinted with c.
func (m LineMaterial) WithColor(c Color) LineMaterial {
	m.Color = c
	return m
}

// Validate checks ranges.
func (m LineMaterial) Validate() error {
	if !m.Color.Valid() {
		return &InvalidMaterialError{Field: "color", Reason: fmt.Sprintf("%#x exceeds 24 bits", uint32(m.Color))}
	}
	if !(m.Opacity >= 0 && m.Opacity <= 1) {
		return &InvalidMaterialError{Field: "opacity", Reason: fmt.Sprintf("%v not in [0,1]", m.Opacity)}
	}
	if m.Style == LineDashed && !(m.Dash > 0 && m.Gap > 0) {
		return &InvalidMaterialError{Field: "dash", Reason: "dashed lines need positive dash and gap lengths"}
	}
	return nil
}
