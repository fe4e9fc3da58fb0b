package advanced

import (
	"math"

	"github.com/golang/geo/r2"
)

// Triangle location and Delaunay restoration. The walk starts from an
// arbitrary triangle and crosses edges toward the query point, in the style
// of Guibas and Stolfi. The flip propagates recursively from a freshly
// inserted point until the local empty-circumcircle property holds again.

// walkTolerance bounds how far outside an edge's half-space a point must be
// before the walk treats the edge as crossed.
const walkTolerance = 1.0e-14

// maxRecursionDepth limits flip recursion. The algorithm has numerical
// trouble in near-degenerate configurations, and unbounded recursion there
// can run away before the mesh settles.
const maxRecursionDepth = 2500

// walkRotation picks a starting edge for the walk's in/out tests,
// deterministically from the triangle id. Rotating the evaluation order
// breaks walk cycles in symmetric point configurations; hashing the id keeps
// runs reproducible where a global PRNG would not be.
func walkRotation(tri int) int {
	return int((uint64(tri) * 0x9E3779B97F4A7C15) % 3)
}

// findTriangle locates the triangle containing x, walking from tri. On
// success it fills pts with the triangle's vertices and returns the triangle
// id. nei communicates edge hits: nei[0] < 0 means x is strictly interior;
// otherwise x lies on the edge (nei[1], nei[2]) shared with triangle nei[0].
// Returns -1 when x duplicates an existing point or the walk degenerates; the
// corresponding counter is incremented.
func (t *Triangulator) findTriangle(x Vec3, pts *[3]int, tri int, nei *[3]int) int {
	var p [3]Vec3
	cell := t.mesh.cellPoints(tri)
	for i := 0; i < 3; i++ {
		pts[i] = cell[i]
		p[i] = t.points[cell[i]]
	}

	ir := walkRotation(tri)
	inside := true
	minProj := walkTolerance
	for ic := 0; ic < 3; ic++ {
		i := (ir + ic) % 3
		i2 := (i + 1) % 3
		i3 := (i + 2) % 3

		// A 2D edge normal defines a half-space; evaluate the candidate point
		// and the off-edge triangle vertex against it.
		n, _ := normalize2(r2.Point{X: -(p[i2].Y - p[i].Y), Y: p[i2].X - p[i].X})

		vp, _ := normalize2(p[i3].xy().Sub(p[i].xy()))
		vx, lx := normalize2(x.xy().Sub(p[i].xy()))

		if lx <= t.tolerance {
			t.NumberOfDuplicatePoints++
			return -1
		}

		// Signed projection of the candidate, oriented so the opposite vertex
		// is on the positive side. Negative means the two straddle the edge.
		dp := n.Dot(vx)
		if n.Dot(vp) < 0 {
			dp = -dp
		}
		if dp < walkTolerance && dp < minProj {
			// Track the edge most orthogonal to the point direction.
			inside = false
			nei[1] = pts[i]
			nei[2] = pts[i2]
			minProj = dp
		}
	}

	if inside {
		nei[0] = -1
		return tri
	}

	if math.Abs(minProj) < walkTolerance {
		// On an edge; report the neighbor across it.
		t.neighbors = t.mesh.cellEdgeNeighbors(tri, nei[1], nei[2], t.neighbors[:0])
		if len(t.neighbors) == 0 {
			t.NumberOfDegeneracies++
			return -1
		}
		nei[0] = t.neighbors[0]
		return tri
	}

	// Walk across the most-outward edge. Arriving back where we came from
	// means the local geometry is too degenerate to resolve.
	t.neighbors = t.mesh.cellEdgeNeighbors(tri, nei[1], nei[2], t.neighbors[:0])
	if len(t.neighbors) == 0 || t.neighbors[0] == nei[0] {
		t.NumberOfDegeneracies++
		return -1
	}
	newNei := t.neighbors[0]
	nei[0] = tri
	return t.findTriangle(x, pts, newNei, nei)
}

// checkEdge tests the edge (p1, p2) of triangle tri against the Delaunay
// criterion from the perspective of the inserted point ptId at x, and swaps
// the diagonal if it fails. In recursive mode the two edges exposed by a swap
// are checked in turn. Reports whether any swap happened.
func (t *Triangulator) checkEdge(ptId int, x Vec3, p1, p2, tri int, recursive bool, depth int) bool {
	if depth >= maxRecursionDepth {
		t.warnOnce(&t.recursionWarned, "exceeded flip recursion depth; mesh may be locally non-Delaunay")
		return false
	}

	x1 := t.points[p1]
	x2 := t.points[p2]

	neighbors := t.mesh.cellEdgeNeighbors(tri, p1, p2, nil)
	if len(neighbors) == 0 {
		// Boundary edge; nothing to flip.
		return false
	}

	nei := neighbors[0]
	pts := t.mesh.cellPoints(nei)
	p3 := pts[2]
	for i := 0; i < 2; i++ {
		if pts[i] != p1 && pts[i] != p2 {
			p3 = pts[i]
			break
		}
	}
	x3 := t.points[p3]

	if !t.inCircle(x3, x, x1, x2) {
		return false
	}

	// Swap the diagonal: (p1,p2) out, (ptId,p3) in.
	t.mesh.removeReference(p1, tri)
	t.mesh.removeReference(p2, nei)
	t.mesh.resizeCellList(ptId, 1)
	t.mesh.addReference(ptId, nei)
	t.mesh.resizeCellList(p3, 1)
	t.mesh.addReference(p3, tri)

	t.mesh.replaceCell(tri, ptId, p3, p2)
	t.mesh.replaceCell(nei, ptId, p1, p3)

	if recursive {
		// Two new edges become suspect.
		depth++
		t.checkEdge(ptId, x, p3, p2, tri, true, depth)
		depth++
		t.checkEdge(ptId, x, p1, p3, nei, true, depth)
	}
	return true
}
