// Package scene defines the renderable primitives handed to the display
// layer. Values are built once by the builders and never changed afterwards;
// the caller owns them.
package scene

import (
	"fmt"

	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/style"
	"github.com/deadsy/sdfx/sdf"
)

// Solid is a triangulated mesh with its material.
type Solid struct {
	Name     string         `json:"name"`
	Mesh     *kernel.Mesh   `json:"mesh"`
	Material style.Material `json:"material"`
}

// IsEmpty reports whether the solid carries no geometry. Builders return
// empty solids for partial survey data.
func (s Solid) IsEmpty() bool {
	return s.Mesh.IsEmpty()
}

// Curve is an ordered polyline with its stroke.
type Curve struct {
	Name     string             `json:"name"`
	Points   []geom.Point3      `json:"points"`
	Material style.LineMaterial `json:"material"`
}

// IsEmpty reports whether the curve has fewer than two points.
func (c Curve) IsEmpty() bool {
	return len(c.Points) < 2
}

// MarkerKind distinguishes the compound markers.
type MarkerKind int

const (
	MarkerSite     MarkerKind = iota // drilling site: emissive core and halo
	MarkerFracture                   // fracture event: core and additive glow
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerSite:
		return "site"
	case MarkerFracture:
		return "fracture"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MarkerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MarkerKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "site":
		*k = MarkerSite
	case "fracture":
		*k = MarkerFracture
	default:
		return fmt.Errorf("scene: unknown marker kind %q", text)
	}
	return nil
}

// Marker is a group of solids sharing one transform. Parts are stored in
// local coordinates around the origin; Transform places them at Position.
type Marker struct {
	Name      string      `json:"name"`
	Label     string      `json:"label,omitempty"`
	Kind      MarkerKind  `json:"kind"`
	Position  geom.Point3 `json:"position"`
	Transform sdf.M44     `json:"-"`
	Parts     []Solid     `json:"parts"`
	Energy    float64     `json:"energy,omitempty"` // microseismic energy; zero for sites
}

// IsSite reports whether the marker is a drilling site, for the caller's
// hit-testing.
func (m Marker) IsSite() bool {
	return m.Kind == MarkerSite
}

// WorldParts returns copies of the parts with the shared transform applied.
func (m Marker) WorldParts() []Solid {
	out := make([]Solid, len(m.Parts))
	for i, p := range m.Parts {
		out[i] = Solid{Name: p.Name, Mesh: p.Mesh.Transform(m.Transform), Material: p.Material}
	}
	return out
}

// Collection gathers everything built for one scene.
type Collection struct {
	Solids  []Solid  `json:"solids"`
	Curves  []Curve  `json:"curves"`
	Markers []Marker `json:"markers"`
}

// NewCollection returns a collection with non-nil empty slices, so it
// serialises as [] rather than null.
func NewCollection() *Collection {
	return &Collection{Solids: []Solid{}, Curves: []Curve{}, Markers: []Marker{}}
}

// Len returns the total number of primitives.
func (c *Collection) Len() int {
	return len(c.Solids) + len(c.Curves) + len(c.Markers)
}
