package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/drillscene/pkg/geom"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func near(a, b geom.Point3) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

var bendingHole = []geom.Point3{
	{X: 0, Y: 0, Z: 0},
	{X: 10, Y: -2, Z: -5},
	{X: 25, Y: -3, Z: -6},
	{X: 31, Y: -9, Z: -20},
	{X: 40, Y: -10, Z: -42},
}

func TestNewRejectsTooFewPoints(t *testing.T) {
	for _, pts := range [][]geom.Point3{nil, {{X: 1}}} {
		_, err := New(pts)
		var ipe *InsufficientPointsError
		if !errors.As(err, &ipe) {
			t.Fatalf("New(%d points): expected *InsufficientPointsError, got %v", len(pts), err)
		}
		if ipe.Got != len(pts) || ipe.Want != MinPoints {
			t.Errorf("error = %+v", ipe)
		}
	}
}

func TestNewRejectsNonFinite(t *testing.T) {
	_, err := New([]geom.Point3{{X: 0}, {X: math.Inf(-1)}})
	var ge *geom.InvalidGeometryInputError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *geom.InvalidGeometryInputError, got %v", err)
	}
}

func TestPassesThroughControlPoints(t *testing.T) {
	for _, kind := range []Kind{Centripetal, Uniform} {
		t.Run(kind.String(), func(t *testing.T) {
			c, err := NewWithKind(bendingHole, kind)
			if err != nil {
				t.Fatalf("NewWithKind: %v", err)
			}
			n := len(bendingHole)
			for i, want := range bendingHole {
				got := c.Point(float64(i) / float64(n-1))
				if !near(got, want) {
					t.Errorf("Point(%d/%d) = %v, want %v", i, n-1, got, want)
				}
			}

			// Sampling with a multiple of the segment count lands on every control point.
			samples, err := c.Sample(8 * (n - 1))
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			for i, want := range bendingHole {
				if got := samples[8*i]; !near(got, want) {
					t.Errorf("sample %d = %v, want control point %v", 8*i, got, want)
				}
			}
		})
	}
}

func TestTwoPointsIsStraightSegment(t *testing.T) {
	a := geom.Point3{X: 1, Y: 2, Z: 3}
	b := geom.Point3{X: 11, Y: -8, Z: 23}
	c, err := New([]geom.Point3{a, b})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pts, err := c.Sample(10)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i, p := range pts {
		want := a.Add(b.Sub(a).MulScalar(float64(i) / 10))
		if !near(p, want) {
			t.Errorf("sample %d = %v, want %v", i, p, want)
		}
	}
	dir := b.Sub(a).Normalize()
	if got := c.Tangent(0.37); !near(got, dir) {
		t.Errorf("Tangent = %v, want %v", got, dir)
	}
}

func TestSampleCount(t *testing.T) {
	c, err := New(bendingHole)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		n       int
		wantLen int
		wantErr error
	}{
		{2, 3, nil},
		{64, 65, nil},
		{100, 101, nil},
		{1, 0, ErrInvalidSampleCount},
		{0, 0, ErrInvalidSampleCount},
	}
	for _, tt := range tests {
		pts, err := c.Sample(tt.n)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Sample(%d) error = %v, want %v", tt.n, err, tt.wantErr)
			continue
		}
		if len(pts) != tt.wantLen {
			t.Errorf("Sample(%d) returned %d points, want %d", tt.n, len(pts), tt.wantLen)
		}
		if tt.wantErr == nil {
			if pts[0] != bendingHole[0] {
				t.Errorf("first sample = %v, want %v", pts[0], bendingHole[0])
			}
			if !near(pts[len(pts)-1], bendingHole[len(bendingHole)-1]) {
				t.Errorf("last sample = %v, want %v", pts[len(pts)-1], bendingHole[len(bendingHole)-1])
			}
		}
	}
}

func TestTangentsAreUnit(t *testing.T) {
	pts := append([]geom.Point3{}, bendingHole...)
	pts = append(pts, pts[len(pts)-1]) // duplicated final station
	c, err := New(pts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tans, err := c.SampleTangents(50)
	if err != nil {
		t.Fatalf("SampleTangents: %v", err)
	}
	for i, v := range tans {
		if !scalar.EqualWithinAbs(v.Length(), 1, 1e-9) {
			t.Errorf("tangent %d has length %v", i, v.Length())
		}
	}
}

func TestPointClampsParameter(t *testing.T) {
	c, err := New(bendingHole)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Point(-3); got != bendingHole[0] {
		t.Errorf("Point(-3) = %v, want start", got)
	}
	if got := c.Point(7); !near(got, bendingHole[len(bendingHole)-1]) {
		t.Errorf("Point(7) = %v, want end", got)
	}
}

func TestSampleDeterministic(t *testing.T) {
	c1, _ := New(bendingHole)
	c2, _ := New(bendingHole)
	a, _ := c1.Sample(64)
	b, _ := c2.Sample(64)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("samples differ:\n%s", diff)
	}
}

func TestPointsIsCopy(t *testing.T) {
	src := []geom.Point3{{X: 1}, {X: 2}}
	c, _ := New(src)
	src[0].X = 99
	got := c.Points()
	got[1].X = 42
	if c.Point(0).X != 1 || c.Points()[1].X != 2 {
		t.Error("curve shares storage with caller slices")
	}
}
