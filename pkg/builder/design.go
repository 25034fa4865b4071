package builder

import (
	"math"

	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
)

const degToRad = math.Pi / 180

// DesignParameters describe a planned straight hole from a collar point.
// Azimuth is measured in degrees clockwise from north, dip in degrees
// upward from horizontal.
type DesignParameters struct {
	Start          geom.Point3 `json:"start"`
	Length         float64     `json:"length"`
	AzimuthDegrees float64     `json:"azimuth"`
	DipDegrees     float64     `json:"dip"`
}

// NormalizeDesign wraps azimuth into [0, 360) and clamps dip to [-90, 90].
// Values already in range are returned unchanged.
func NormalizeDesign(p DesignParameters) DesignParameters {
	az := math.Mod(p.AzimuthDegrees, 360)
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		az = 0
	}
	p.AzimuthDegrees = az
	p.DipDegrees = math.Max(-90, math.Min(90, p.DipDegrees))
	return p
}

func (p DesignParameters) validate() error {
	if err := geom.ValidatePoint("start", p.Start); err != nil {
		return err
	}
	if err := finite("azimuth", p.AzimuthDegrees); err != nil {
		return err
	}
	if err := finite("dip", p.DipDegrees); err != nil {
		return err
	}
	if err := finite("length", p.Length); err != nil {
		return err
	}
	if p.Length < 0 {
		return &InvalidDimensionError{Field: "length", Value: p.Length}
	}
	return nil
}

// DesignEnd returns the end point of a planned hole after normalizing its
// parameters. Azimuth 0 points north (-Z), 90 east (+X); positive dip
// points up (+Y).
func DesignEnd(p DesignParameters) (geom.Point3, error) {
	if err := p.validate(); err != nil {
		return geom.Point3{}, err
	}
	p = NormalizeDesign(p)
	az := p.AzimuthDegrees * degToRad
	dip := p.DipDegrees * degToRad

	horizontal := p.Length * math.Cos(dip)
	east := horizontal * math.Sin(az)
	north := horizontal * math.Cos(az)
	up := p.Length * math.Sin(dip)

	return geom.Point3{
		X: p.Start.X + east,
		Y: p.Start.Y + up,
		Z: p.Start.Z - north,
	}, nil
}

// DesignTrajectory returns the dashed two-point line from the collar to
// DesignEnd.
func (b *Builder) DesignTrajectory(name string, p DesignParameters, color style.Color) (scene.Curve, error) {
	mat := b.theme.Design.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Curve{}, err
	}
	end, err := DesignEnd(p)
	if err != nil {
		return scene.Curve{}, err
	}
	return scene.Curve{Name: name, Points: []geom.Point3{p.Start, end}, Material: mat}, nil
}
