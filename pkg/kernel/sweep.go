package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Frame is an orthonormal basis attached to a point of a swept path.
// Binormal = Tangent x Normal.
type Frame struct {
	Tangent  v3.Vec
	Normal   v3.Vec
	Binormal v3.Vec
}

// ParallelTransportFrames builds rotation-minimising frames along a sequence
// of unit tangents. The first normal is taken perpendicular to the tangent's
// smallest component axis; each following normal is the previous one rotated
// by the angle between consecutive tangents.
func ParallelTransportFrames(tangents []v3.Vec) []Frame {
	frames := make([]Frame, len(tangents))
	if len(tangents) == 0 {
		return frames
	}

	t0 := tangents[0]
	n0 := t0.Cross(t0.Cross(smallestAxis(t0)).Normalize())
	frames[0] = Frame{Tangent: t0, Normal: n0, Binormal: t0.Cross(n0)}

	for i := 1; i < len(tangents); i++ {
		prev, t := tangents[i-1], tangents[i]
		n := frames[i-1].Normal

		if axis := prev.Cross(t); axis.Length() > 1e-12 {
			theta := math.Acos(math.Max(-1, math.Min(1, prev.Dot(t))))
			n = rotate(n, axis.Normalize(), theta)
		}
		// Re-orthogonalise against the new tangent to stop drift.
		n = n.Sub(t.MulScalar(t.Dot(n))).Normalize()
		frames[i] = Frame{Tangent: t, Normal: n, Binormal: t.Cross(n)}
	}
	return frames
}

// UpFrames builds frames whose normal stays perpendicular to up:
// N = normalize(up x T), B = T x N. A swept rectangle then keeps its width
// level and its height along up. Where a tangent runs parallel to up the
// previous normal is carried over; a path that starts parallel to up falls
// back to ParallelTransportFrames for its first normal.
func UpFrames(tangents []v3.Vec, up v3.Vec) []Frame {
	frames := make([]Frame, len(tangents))
	if len(tangents) == 0 {
		return frames
	}
	up = up.Normalize()

	var fallback []Frame
	for i, t := range tangents {
		n := up.Cross(t)
		if n.Length() < 1e-9 {
			switch {
			case i > 0:
				n = frames[i-1].Normal
			default:
				if fallback == nil {
					fallback = ParallelTransportFrames(tangents[:1])
				}
				n = fallback[0].Normal
			}
			n = n.Sub(t.MulScalar(t.Dot(n)))
		}
		n = n.Normalize()
		frames[i] = Frame{Tangent: t, Normal: n, Binormal: t.Cross(n)}
	}
	return frames
}

func smallestAxis(t v3.Vec) v3.Vec {
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	smallest := math.MaxFloat64
	var axis v3.Vec
	if ax <= smallest {
		smallest = ax
		axis = v3.Vec{X: 1}
	}
	if ay <= smallest {
		smallest = ay
		axis = v3.Vec{Y: 1}
	}
	if az <= smallest {
		axis = v3.Vec{Z: 1}
	}
	return axis
}

// rotate turns v about the unit axis k by theta (Rodrigues).
func rotate(v, k v3.Vec, theta float64) v3.Vec {
	c, s := math.Cos(theta), math.Sin(theta)
	return v.MulScalar(c).
		Add(k.Cross(v).MulScalar(s)).
		Add(k.MulScalar(k.Dot(v) * (1 - c)))
}

// Tube sweeps a circle of the given radius along path. path and frames must
// have equal length of at least 2. The mesh has (len(path)) rings of
// radialSegments+1 vertices; the seam vertex is duplicated so the ring closes.
// The tube is open at both ends.
func Tube(path []v3.Vec, frames []Frame, radius float64, radialSegments int) *Mesh {
	if len(path) < 2 || len(frames) != len(path) || radius <= 0 || radialSegments < 3 {
		return &Mesh{}
	}
	ring := radialSegments + 1
	b := newBuilder(len(path)*ring, (len(path)-1)*radialSegments*2)

	for i, p := range path {
		f := frames[i]
		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			sin, cos := math.Sin(v), -math.Cos(v)
			n := f.Normal.MulScalar(cos).Add(f.Binormal.MulScalar(sin)).Normalize()
			b.vertex(p.Add(n.MulScalar(radius)), n)
		}
	}

	r := uint32(ring)
	for j := uint32(1); j < uint32(len(path)); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := r*(j-1) + (i - 1)
			bb := r*j + (i - 1)
			c := r*j + i
			d := r*(j-1) + i
			b.triangle(a, bb, d)
			b.triangle(bb, c, d)
		}
	}
	return b.mesh()
}

// SweepRect sweeps a width x height rectangle, centred on the path, along
// path. Width runs along each frame's normal and height along its binormal.
// Each wall gets its own vertices so shading stays flat; both ends are
// capped.
func SweepRect(path []v3.Vec, frames []Frame, width, height float64) *Mesh {
	if len(path) < 2 || len(frames) != len(path) || width <= 0 || height <= 0 {
		return &Mesh{}
	}
	hw, hh := width/2, height/2
	// Profile corners counter-clockwise seen from +tangent, as (normal, binormal) offsets.
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	// Outward wall directions as (normal, binormal) factors.
	walls := [4][2]float64{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	at := func(i, k int) v3.Vec {
		f := frames[i]
		return path[i].Add(f.Normal.MulScalar(corners[k][0])).Add(f.Binormal.MulScalar(corners[k][1]))
	}

	rings := len(path)
	b := newBuilder(rings*8+8, (rings-1)*8+4)

	for i := range path {
		f := frames[i]
		for k := 0; k < 4; k++ {
			n := f.Normal.MulScalar(walls[k][0]).Add(f.Binormal.MulScalar(walls[k][1]))
			b.vertex(at(i, k), n)
			b.vertex(at(i, (k+1)%4), n)
		}
	}
	for i := 0; i < rings-1; i++ {
		for k := 0; k < 4; k++ {
			a := uint32(i*8 + 2*k)
			bb := a + 1
			c := uint32((i+1)*8+2*k) + 1
			d := c - 1
			b.triangle(a, bb, c)
			b.triangle(a, c, d)
		}
	}

	start := make([]uint32, 4)
	back := frames[0].Tangent.MulScalar(-1)
	for k := range start {
		start[k] = b.vertex(at(0, k), back)
	}
	b.triangle(start[0], start[2], start[1])
	b.triangle(start[0], start[3], start[2])

	end := make([]uint32, 4)
	last := rings - 1
	for k := range end {
		end[k] = b.vertex(at(last, k), frames[last].Tangent)
	}
	b.triangle(end[0], end[1], end[2])
	b.triangle(end[0], end[2], end[3])

	return b.mesh()
}
