package kernel

import v3 "github.com/deadsy/sdfx/vec/v3"

// Plane builds a width x height grid in the XY plane, centred on the origin,
// facing +Z.
func Plane(width, height float64, widthSegs, heightSegs int) *Mesh {
	if width <= 0 || height <= 0 || widthSegs < 1 || heightSegs < 1 {
		return &Mesh{}
	}
	gx, gy := widthSegs+1, heightSegs+1
	segW, segH := width/float64(widthSegs), height/float64(heightSegs)
	up := v3.Vec{Z: 1}

	b := newBuilder(gx*gy, widthSegs*heightSegs*2)
	for iy := 0; iy < gy; iy++ {
		y := float64(iy)*segH - height/2
		for ix := 0; ix < gx; ix++ {
			x := float64(ix)*segW - width/2
			b.vertex(v3.Vec{X: x, Y: -y}, up)
		}
	}
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := uint32(ix + gx*iy)
			bb := uint32(ix + gx*(iy+1))
			c := uint32(ix + 1 + gx*(iy+1))
			d := uint32(ix + 1 + gx*iy)
			b.triangle(a, bb, d)
			b.triangle(bb, c, d)
		}
	}
	return b.mesh()
}
