// Package curve fits Catmull-Rom splines through ordered survey points and
// samples them for extrusion.
package curve

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/chazu/drillscene/pkg/geom"
	"gonum.org/v1/gonum/floats"
)

// MinPoints is the fewest control points a curve can be built from.
const MinPoints = 2

// Kind selects the Catmull-Rom parameterisation.
type Kind int

const (
	Centripetal Kind = iota // alpha 0.5, no cusps on uneven spacing
	Uniform                 // tension 0.5
)

func (k Kind) String() string {
	switch k {
	case Centripetal:
		return "centripetal"
	case Uniform:
		return "uniform"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// InsufficientPointsError is returned when a curve is requested from fewer
// than MinPoints control points.
type InsufficientPointsError struct {
	Got  int
	Want int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("curve: need at least %d points, got %d", e.Want, e.Got)
}

// ErrInvalidSampleCount is returned by Sample for counts below 2.
var ErrInvalidSampleCount = errors.New("curve: sample count must be at least 2")

// CatmullRom is an interpolating spline through an ordered point sequence.
// It passes through control point i at parameter i/(n-1). A CatmullRom is
// immutable and safe for concurrent use.
type CatmullRom struct {
	points []geom.Point3
	kind   Kind
}

// New builds a centripetal Catmull-Rom curve.
func New(points []geom.Point3) (*CatmullRom, error) {
	return NewWithKind(points, Centripetal)
}

// NewWithKind builds a Catmull-Rom curve with the given parameterisation.
// The points are copied.
func NewWithKind(points []geom.Point3, kind Kind) (*CatmullRom, error) {
	if len(points) < MinPoints {
		return nil, &InsufficientPointsError{Got: len(points), Want: MinPoints}
	}
	if err := geom.ValidatePoints("points", points); err != nil {
		return nil, err
	}
	return &CatmullRom{points: slices.Clone(points), kind: kind}, nil
}

// Points returns a copy of the control points.
func (c *CatmullRom) Points() []geom.Point3 {
	return slices.Clone(c.points)
}

// Kind returns the parameterisation.
func (c *CatmullRom) Kind() Kind {
	return c.kind
}

// Point returns the position at parameter t, clamped to [0, 1].
func (c *CatmullRom) Point(t float64) geom.Point3 {
	poly, w := c.segment(t)
	return poly.at(w)
}

// Tangent returns the unit tangent at parameter t. Where the derivative
// vanishes (coincident control points) the chord of the segment is used
// instead, and +Z if that is degenerate too.
func (c *CatmullRom) Tangent(t float64) geom.Point3 {
	poly, w := c.segment(t)
	d := poly.derivative(w)
	if d.Length() > 1e-12 {
		return d.Normalize()
	}
	chord := poly.at(1).Sub(poly.at(0))
	if chord.Length() > 1e-12 {
		return chord.Normalize()
	}
	return geom.Point3{Z: 1}
}

// Sample returns n+1 points evenly spaced in curve parameter from start to
// end inclusive.
func (c *CatmullRom) Sample(n int) ([]geom.Point3, error) {
	ts, err := Params(n)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Point3, len(ts))
	for i, t := range ts {
		pts[i] = c.Point(t)
	}
	return pts, nil
}

// SampleTangents returns the unit tangents at the same parameters as Sample.
func (c *CatmullRom) SampleTangents(n int) ([]geom.Point3, error) {
	ts, err := Params(n)
	if err != nil {
		return nil, err
	}
	tans := make([]geom.Point3, len(ts))
	for i, t := range ts {
		tans[i] = c.Tangent(t)
	}
	return tans, nil
}

// Params returns the n+1 evenly spaced parameters 0, 1/n, ..., 1.
func Params(n int) ([]float64, error) {
	if n < 2 {
		return nil, ErrInvalidSampleCount
	}
	return floats.Span(make([]float64, n+1), 0, 1), nil
}

// segment locates the cubic for parameter t and the local weight within it.
func (c *CatmullRom) segment(t float64) (cubic, float64) {
	n := len(c.points)
	t = math.Max(0, math.Min(1, t))

	p := float64(n-1) * t
	i := int(math.Floor(p))
	w := p - float64(i)
	if i >= n-1 {
		i, w = n-2, 1
	}

	p1, p2 := c.points[i], c.points[i+1]
	p0 := p1.MulScalar(2).Sub(p2)
	if i > 0 {
		p0 = c.points[i-1]
	}
	p3 := p2.MulScalar(2).Sub(p1)
	if i+2 < n {
		p3 = c.points[i+2]
	}

	if c.kind == Uniform {
		return hermite(p1, p2, p2.Sub(p0).MulScalar(0.5), p3.Sub(p1).MulScalar(0.5)), w
	}
	return centripetal(p0, p1, p2, p3), w
}

// centripetal builds the segment between p1 and p2 with knot spacing equal
// to the square root of the chord lengths.
func centripetal(p0, p1, p2, p3 geom.Point3) cubic {
	dt0 := math.Sqrt(p1.Sub(p0).Length())
	dt1 := math.Sqrt(p2.Sub(p1).Length())
	dt2 := math.Sqrt(p3.Sub(p2).Length())

	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	t1 := p1.Sub(p0).DivScalar(dt0).
		Sub(p2.Sub(p0).DivScalar(dt0 + dt1)).
		Add(p2.Sub(p1).DivScalar(dt1)).
		MulScalar(dt1)
	t2 := p2.Sub(p1).DivScalar(dt1).
		Sub(p3.Sub(p1).DivScalar(dt1 + dt2)).
		Add(p3.Sub(p2).DivScalar(dt2)).
		MulScalar(dt1)

	return hermite(p1, p2, t1, t2)
}

// cubic is c0 + c1 w + c2 w^2 + c3 w^3 with vector coefficients.
type cubic struct {
	c0, c1, c2, c3 geom.Point3
}

func hermite(x0, x1, t0, t1 geom.Point3) cubic {
	return cubic{
		c0: x0,
		c1: t0,
		c2: x0.MulScalar(-3).Add(x1.MulScalar(3)).Sub(t0.MulScalar(2)).Sub(t1),
		c3: x0.MulScalar(2).Sub(x1.MulScalar(2)).Add(t0).Add(t1),
	}
}

func (p cubic) at(w float64) geom.Point3 {
	return p.c0.Add(p.c1.MulScalar(w)).Add(p.c2.MulScalar(w * w)).Add(p.c3.MulScalar(w * w * w))
}

func (p cubic) derivative(w float64) geom.Point3 {
	return p.c1.Add(p.c2.MulScalar(2 * w)).Add(p.c3.MulScalar(3 * w * w))
}
