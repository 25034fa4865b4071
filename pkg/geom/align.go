package geom

import "github.com/samber/lo"

// Align translates points into the scene-local frame by subtracting offset
// from every point. The input is not modified; an empty input yields an empty
// slice.
func Align(points []Point3, offset Point3) []Point3 {
	if len(points) == 0 {
		return []Point3{}
	}
	return lo.Map(points, func(p Point3, _ int) Point3 {
		return p.Sub(offset)
	})
}
