package builder

import (
	"math"

	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	"github.com/deadsy/sdfx/sdf"
)

// Plane constants. Roof planes sit DefaultRoofOffset above the center.
const (
	PlaneSegments     = 10
	DefaultRoofOffset = 15.0
)

// ReferencePlane builds a horizontal wireframe plane of width (east-west)
// by height (north-south), centred on center and raised by offset.
func (b *Builder) ReferencePlane(name string, center geom.Point3, width, height, offset float64, color style.Color) (scene.Solid, error) {
	if err := geom.ValidatePoint("center", center); err != nil {
		return scene.Solid{}, err
	}
	if err := finite("offset", offset); err != nil {
		return scene.Solid{}, err
	}
	if err := positive("width", width); err != nil {
		return scene.Solid{}, err
	}
	if err := positive("height", height); err != nil {
		return scene.Solid{}, err
	}
	mat := b.theme.Plane.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Solid{}, err
	}
	at := geom.Point3{X: center.X, Y: center.Y + offset, Z: center.Z}
	t := sdf.Translate3d(at).Mul(sdf.RotateX(-math.Pi / 2))
	return solid(name, kernel.Plane(width, height, PlaneSegments, PlaneSegments).Transform(t), mat)
}

// CoalSeam builds the seam plane, sunk by half the seam thickness.
func (b *Builder) CoalSeam(name string, center geom.Point3, width, height, thickness float64, color style.Color) (scene.Solid, error) {
	if err := positive("thickness", thickness); err != nil {
		return scene.Solid{}, err
	}
	return b.ReferencePlane(name, center, width, height, -thickness/2, color)
}

// RoofPlane builds the roof reference plane DefaultRoofOffset above center.
func (b *Builder) RoofPlane(name string, center geom.Point3, width, height float64, color style.Color) (scene.Solid, error) {
	return b.ReferencePlane(name, center, width, height, DefaultRoofOffset, color)
}
