package advanced

import (
	"math"

	"github.com/golang/geo/r2"
)

// Geometric primitives for the triangulation. Everything in-plane works on
// r2.Point values extracted from the xy components of Vec3; the 3D helpers
// exist for the split planes used in constraint recovery and for evaluating
// the alpha criterion in the points' own plane.

// Circumcircle computes the center and squared radius of the circle through
// the xy projections of three points. Collinear input has no circumcircle; in
// that case the radius comes back effectively infinite so that degenerate
// triangles always accept new points.
func Circumcircle(a, b, c Vec3) (center r2.Point, radius2 float64) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return r2.Point{}, math.MaxFloat64
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	center.X = (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	center.Y = (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	dx := a.X - center.X
	dy := a.Y - center.Y
	return center, dx*dx + dy*dy
}

// inCircle reports whether x lies inside the circumcircle of (x1, x2, x3).
func (t *Triangulator) inCircle(x, x1, x2, x3 Vec3) bool {
	center, radius2 := Circumcircle(x1, x2, x3)

	// Circumcircles can blow up when an inserted point lands nearly on a
	// triangle edge. Anything larger than the bounding ring is treated as
	// containing every candidate.
	if radius2 > t.boundingRadius2 {
		return true
	}

	dx := x.X - center.X
	dy := x.Y - center.Y
	dist2 := dx*dx + dy*dy

	// Strictly-less against a hair under the true radius orders cocircular
	// points consistently, which controls the diagonals chosen in degenerate
	// configurations. The coefficient is load-bearing; do not "fix" it.
	return dist2 < 0.999999999999*radius2
}

// xy extracts the in-plane component of a point.
func (p Vec3) xy() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// normalize2 scales v to unit length and returns the original length. A zero
// vector is returned unchanged.
func normalize2(v r2.Point) (r2.Point, float64) {
	n := v.Norm()
	if n == 0 {
		return v, 0
	}
	return v.Mul(1 / n), n
}

func sub3(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func cross3(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func dot3(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// normalize3 returns v scaled to unit length along with the original length.
// A zero vector is returned unchanged.
func normalize3(v Vec3) (Vec3, float64) {
	n := math.Sqrt(dot3(v, v))
	if n == 0 {
		return v, 0
	}
	return Vec3{v.X / n, v.Y / n, v.Z / n}, n
}

// planeEvaluate computes the signed distance (scaled by |normal|) of x from
// the plane through origin with the given normal.
func planeEvaluate(normal, origin, x Vec3) float64 {
	return dot3(normal, sub3(x, origin))
}

// triangleNormal computes the (unnormalized) normal of a 3D triangle. The
// orphan rescue pass only compares normal directions, so the magnitude is
// irrelevant there.
func triangleNormal(p0, p1, p2 Vec3) Vec3 {
	return cross3(sub3(p1, p0), sub3(p2, p0))
}

// projectTo2D maps a 3D triangle into an orthonormal frame lying in its own
// plane, preserving edge lengths, so the circumradius can be measured without
// xy-plane distortion. Returns false for a degenerate triangle.
func projectTo2D(x1, x2, x3 Vec3) (p1, p2, p3 r2.Point, ok bool) {
	u := sub3(x2, x1)
	n := cross3(u, sub3(x3, x1))
	u, lu := normalize3(u)
	n, ln := normalize3(n)
	if lu == 0 || ln == 0 {
		return p1, p2, p3, false
	}
	v := cross3(n, u)

	d2 := sub3(x2, x1)
	d3 := sub3(x3, x1)
	p1 = r2.Point{}
	p2 = r2.Point{X: dot3(d2, u), Y: dot3(d2, v)}
	p3 = r2.Point{X: dot3(d3, u), Y: dot3(d3, v)}
	return p1, p2, p3, true
}

// circumradius2In3D measures the squared circumradius of a 3D triangle in its
// own plane. Degenerate triangles report an effectively infinite radius,
// which the alpha filter treats as failing any cutoff.
func circumradius2In3D(x1, x2, x3 Vec3) float64 {
	p1, p2, p3, ok := projectTo2D(x1, x2, x3)
	if !ok {
		return math.MaxFloat64
	}
	_, radius2 := Circumcircle(
		Vec3{p1.X, p1.Y, 0},
		Vec3{p2.X, p2.Y, 0},
		Vec3{p3.X, p3.Y, 0},
	)
	return radius2
}

func distance2(a, b Vec3) float64 {
	d := sub3(a, b)
	return dot3(d, d)
}
