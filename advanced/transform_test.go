package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestFittingPlaneTilted(t *testing.T) {
	// A grid on the plane z = x/2. The fit should recover it exactly, and the
	// resulting transform flattens every point to z = 0.
	var points []Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x := float64(i)
			y := float64(j)
			points = append(points, Vec3{x, y, x / 2})
		}
	}

	transform := ComputeBestFittingPlane(points)
	for _, p := range points {
		assert.InDelta(t, 0, transform.TransformPoint(p).Z, 1e-9)
	}
}

func TestBestFittingPlaneThinBounds(t *testing.T) {
	// Essentially flat input takes the thin-axis fast path: the normal is the
	// z-axis and the transform is a pure translation.
	points := []Vec3{
		{0, 0, 0},
		{4, 1, 1e-9},
		{2, 3, -1e-9},
		{1, 2, 0},
	}
	transform := ComputeBestFittingPlane(points)

	p0 := transform.TransformPoint(points[0])
	p1 := transform.TransformPoint(points[1])
	assert.InDelta(t, 0, p0.Z, 1e-6)
	// Relative positions survive a translation.
	assert.InDelta(t, points[1].X-points[0].X, p1.X-p0.X, 1e-9)
	assert.InDelta(t, points[1].Y-points[0].Y, p1.Y-p0.Y, 1e-9)
}

func TestBestFittingPlaneDegenerate(t *testing.T) {
	// Collinear input has no unique fit; the normal falls back to the z-axis
	// rather than blowing up.
	points := []Vec3{
		{0, 0, 0},
		{1, 1, 5},
		{2, 2, 10},
		{3, 3, 15},
	}
	transform := ComputeBestFittingPlane(points)
	for _, p := range points {
		q := transform.TransformPoint(p)
		assert.False(t, q.X != q.X, "transform produced NaN") // NaN guard
	}
}

func TestRigidTransformRotation(t *testing.T) {
	// Rotating the x-axis normal onto z carries the yz-plane onto xy.
	transform := planeTransform(Vec3{1, 0, 0}, Vec3{0, 0, 0})
	p := transform.TransformPoint(Vec3{0, 2, 3})
	assert.InDelta(t, 0, p.Z, 1e-9)

	// Lengths are preserved.
	q := transform.TransformPoint(Vec3{0, 0, 0})
	assert.InDelta(t, distance2(Vec3{0, 2, 3}, Vec3{0, 0, 0}), distance2(p, q), 1e-9)
}

func TestTriangulateBestFittingPlane(t *testing.T) {
	// A 3x3 grid tilted out of plane. With one interior point and eight
	// boundary points, any full triangulation has 2*1 + 8 - 2 = 8 triangles,
	// regardless of which diagonals the cocircular tiebreaks pick.
	var points []Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x := float64(i)
			y := float64(j)
			points = append(points, Vec3{x, y, (x + y) / 3})
		}
	}

	opts := DefaultOptions()
	opts.ProjectionPlaneMode = BestFittingPlane
	result := NewTriangulator(points, nil, opts).Triangulate()

	assert.Len(t, result.Triangles, 8)
	assert.Equal(t, 0, result.NumberOfDuplicatePoints)
	// Output points are the original, untransformed input.
	assert.Equal(t, points, result.Points)
}
