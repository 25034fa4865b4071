package geom

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3 is a scene-space position in meters. It is the sdfx vector type, so
// the usual vector operations (Add, Sub, MulScalar, Cross, Length) apply.
type Point3 = v3.Vec

// Origin is the zero point.
var Origin = Point3{}

// InvalidGeometryInputError reports a NaN or infinite value in a coordinate or
// numeric parameter.
type InvalidGeometryInputError struct {
	Field string
	Value float64
}

func (e *InvalidGeometryInputError) Error() string {
	return fmt.Sprintf("invalid geometry input: %s is %v", e.Field, e.Value)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateFinite returns an *InvalidGeometryInputError if v is not finite.
func ValidateFinite(field string, v float64) error {
	if !IsFinite(v) {
		return &InvalidGeometryInputError{Field: field, Value: v}
	}
	return nil
}

// ValidatePoint checks every component of p.
func ValidatePoint(field string, p Point3) error {
	if err := ValidateFinite(field+".x", p.X); err != nil {
		return err
	}
	if err := ValidateFinite(field+".y", p.Y); err != nil {
		return err
	}
	return ValidateFinite(field+".z", p.Z)
}

// ValidatePoints checks every point of a sequence. The field name of a failing
// point carries its index.
func ValidatePoints(field string, pts []Point3) error {
	for i, p := range pts {
		if err := ValidatePoint(fmt.Sprintf("%s[%d]", field, i), p); err != nil {
			return err
		}
	}
	return nil
}
