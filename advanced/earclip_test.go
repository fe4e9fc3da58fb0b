package advanced

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func clipper(points ...Vec3) *Triangulator {
	return &Triangulator{points: points}
}

func r2pt(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func TestBoundedTriangulateConvex(t *testing.T) {
	tri := clipper(
		Vec3{0, 0, 0},
		Vec3{1, 0, 0},
		Vec3{1, 1, 0},
		Vec3{0, 1, 0},
	)
	tris, ok := tri.boundedTriangulate([]int{0, 1, 2, 3})
	assert.True(t, ok)
	assert.Len(t, tris, 2)
	assertTrianglesCoverPolygonArea(t, tri, tris, 1.0)
}

func TestBoundedTriangulateSingleTriangle(t *testing.T) {
	tri := clipper(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0})
	tris, ok := tri.boundedTriangulate([]int{0, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, [][3]int{{0, 1, 2}}, tris)
}

func TestBoundedTriangulateReflex(t *testing.T) {
	// L-shaped hexagon, area 3.
	tri := clipper(
		Vec3{0, 0, 0},
		Vec3{2, 0, 0},
		Vec3{2, 1, 0},
		Vec3{1, 1, 0},
		Vec3{1, 2, 0},
		Vec3{0, 2, 0},
	)
	tris, ok := tri.boundedTriangulate([]int{0, 1, 2, 3, 4, 5})
	assert.True(t, ok)
	assert.Len(t, tris, 4)
	assertTrianglesCoverPolygonArea(t, tri, tris, 3.0)
}

func TestBoundedTriangulateClockwise(t *testing.T) {
	// Same hexagon, opposite winding; the clipper follows the polygon's own
	// orientation.
	tri := clipper(
		Vec3{0, 0, 0},
		Vec3{2, 0, 0},
		Vec3{2, 1, 0},
		Vec3{1, 1, 0},
		Vec3{1, 2, 0},
		Vec3{0, 2, 0},
	)
	tris, ok := tri.boundedTriangulate([]int{5, 4, 3, 2, 1, 0})
	assert.True(t, ok)
	assert.Len(t, tris, 4)
	assertTrianglesCoverPolygonArea(t, tri, tris, 3.0)

	// Output is normalized to counterclockwise either way.
	for _, nt := range tris {
		a := tri.points[nt[0]].xy()
		b := tri.points[nt[1]].xy()
		c := tri.points[nt[2]].xy()
		assert.True(t, cross2(b.Sub(a), c.Sub(a)) > 0, "triangle %v is clockwise", nt)
	}
}

func TestBoundedTriangulateDegenerate(t *testing.T) {
	tri := clipper(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0})
	_, ok := tri.boundedTriangulate([]int{0, 1, 2})
	assert.False(t, ok)

	_, ok = tri.boundedTriangulate([]int{0, 1})
	assert.False(t, ok)
}

func TestPointInTriangle(t *testing.T) {
	a := r2pt(0, 0)
	b := r2pt(1, 0)
	c := r2pt(0, 1)
	assert.True(t, pointInTriangle(r2pt(0.25, 0.25), a, b, c, 0))
	assert.True(t, pointInTriangle(r2pt(0.5, 0), a, b, c, 0)) // on edge
	assert.False(t, pointInTriangle(r2pt(1, 1), a, b, c, 0))
	// Winding-agnostic.
	assert.True(t, pointInTriangle(r2pt(0.25, 0.25), a, c, b, 0))
	// Tolerance widens the boundary.
	assert.True(t, pointInTriangle(r2pt(0.5, -0.005), a, b, c, 0.01))
}

func assertTrianglesCoverPolygonArea(t *testing.T, tri *Triangulator, tris [][3]int, expected float64) {
	t.Helper()
	var total float64
	for _, nt := range tris {
		a := tri.points[nt[0]].xy()
		b := tri.points[nt[1]].xy()
		c := tri.points[nt[2]].xy()
		area := cross2(b.Sub(a), c.Sub(a)) / 2
		if area < 0 {
			area = -area
		}
		total += area
	}
	assert.InDelta(t, expected, total, 1e-9)
}
