package builder

import (
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	"github.com/deadsy/sdfx/sdf"
)

// Marker sizes.
const (
	SiteCoreRadius    = 1.5
	SiteHaloRadius    = 2.5
	FractureCoreRatio = 0.4
)

func sphere(r float64) *kernel.Mesh {
	return kernel.Sphere(r, kernel.DefaultSphereWidthSegments, kernel.DefaultSphereHeightSegments)
}

// SiteMarker builds the glowing core and translucent halo marking a
// drilling site. The marker reports IsSite so callers can hit-test it.
func (b *Builder) SiteMarker(name, label string, at geom.Point3, color style.Color) (scene.Marker, error) {
	if err := geom.ValidatePoint("position", at); err != nil {
		return scene.Marker{}, err
	}
	core, err := solid(name+"/core", sphere(SiteCoreRadius), b.theme.SiteCore.WithColor(color))
	if err != nil {
		return scene.Marker{}, err
	}
	halo, err := solid(name+"/halo", sphere(SiteHaloRadius), b.theme.SiteHalo.WithColor(color))
	if err != nil {
		return scene.Marker{}, err
	}
	if err := firstInvalid(core.Material, halo.Material); err != nil {
		return scene.Marker{}, err
	}
	return scene.Marker{
		Name:      name,
		Label:     label,
		Kind:      scene.MarkerSite,
		Position:  at,
		Transform: sdf.Translate3d(at),
		Parts:     []scene.Solid{core, halo},
	}, nil
}

// FractureMarker builds a microseismic event marker: a solid core at
// FractureCoreRatio of radius inside an additive glow of the full radius.
func (b *Builder) FractureMarker(name string, at geom.Point3, radius float64, color style.Color) (scene.Marker, error) {
	if err := geom.ValidatePoint("position", at); err != nil {
		return scene.Marker{}, err
	}
	if err := checkRadius(radius); err != nil {
		return scene.Marker{}, err
	}
	core, err := solid(name+"/core", sphere(FractureCoreRatio*radius), b.theme.FractureCore.WithColor(color))
	if err != nil {
		return scene.Marker{}, err
	}
	glow, err := solid(name+"/glow", sphere(radius), b.theme.FractureGlow.WithColor(color))
	if err != nil {
		return scene.Marker{}, err
	}
	if err := firstInvalid(core.Material, glow.Material); err != nil {
		return scene.Marker{}, err
	}
	return scene.Marker{
		Name:      name,
		Kind:      scene.MarkerFracture,
		Position:  at,
		Transform: sdf.Translate3d(at),
		Parts:     []scene.Solid{core, glow},
	}, nil
}

// StageSphere builds the single sphere drawn for a fracture stage, already
// placed in world coordinates.
func (b *Builder) StageSphere(name string, at geom.Point3, radius float64, color style.Color) (scene.Solid, error) {
	if err := geom.ValidatePoint("position", at); err != nil {
		return scene.Solid{}, err
	}
	if err := checkRadius(radius); err != nil {
		return scene.Solid{}, err
	}
	mat := b.theme.Stage.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Solid{}, err
	}
	return solid(name, sphere(radius).Transform(sdf.Translate3d(at)), mat)
}

func checkRadius(r float64) error {
	if err := finite("radius", r); err != nil {
		return err
	}
	if r <= 0 {
		return &InvalidRadiusError{Radius: r}
	}
	return nil
}

func firstInvalid(mats ...style.Material) error {
	for _, m := range mats {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
