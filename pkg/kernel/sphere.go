package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Default UV sphere resolution.
const (
	DefaultSphereWidthSegments  = 32
	DefaultSphereHeightSegments = 16
)

// Sphere builds a UV sphere of the given radius centred on the origin.
// The seam column and the pole rows are duplicated, the degenerate pole
// triangles are skipped.
func Sphere(radius float64, widthSegs, heightSegs int) *Mesh {
	if radius <= 0 || widthSegs < 3 || heightSegs < 2 {
		return &Mesh{}
	}
	b := newBuilder((widthSegs+1)*(heightSegs+1), widthSegs*heightSegs*2)

	rows := make([][]uint32, 0, heightSegs+1)
	for y := 0; y <= heightSegs; y++ {
		row := make([]uint32, 0, widthSegs+1)
		v := float64(y) / float64(heightSegs)
		for x := 0; x <= widthSegs; x++ {
			u := float64(x) / float64(widthSegs)
			n := v3.Vec{
				X: -math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: math.Cos(v * math.Pi),
				Z: math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			row = append(row, b.vertex(n.MulScalar(radius), n))
		}
		rows = append(rows, row)
	}

	for y := 0; y < heightSegs; y++ {
		for x := 0; x < widthSegs; x++ {
			i1 := rows[y][x+1]
			i2 := rows[y][x]
			i3 := rows[y+1][x]
			i4 := rows[y+1][x+1]
			if y != 0 {
				b.triangle(i1, i2, i4)
			}
			if y != heightSegs-1 {
				b.triangle(i2, i3, i4)
			}
		}
	}
	return b.mesh()
}
