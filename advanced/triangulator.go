package advanced

import (
	"fmt"
	"math"
)

// A Triangulator runs one constrained Delaunay triangulation with alpha-shape
// filtering. Construct it with NewTriangulator, call Triangulate once, and
// read the diagnostics off the result. The mesh and point arrays are owned
// exclusively by the run; a Triangulator is not reusable and not safe to
// share across goroutines.
//
// The algorithm is incremental insertion: a bounding ring of eight points
// seeds six triangles around the input, each input point is located by
// walking the mesh and split into the containing triangle (or edge pair), and
// recursive diagonal flips restore the empty-circumcircle property. With a
// constraint source, missing constraint edges are carved back in afterward
// and polygons classify triangles inside or outside. Alpha filtering and
// removal of ring-connected triangles happen during output assembly.
type Triangulator struct {
	opts   *Options
	source *Source

	inPoints  []Vec3 // original input, untouched
	points    []Vec3 // working copy (possibly transformed) plus 8 ring points
	numPoints int
	transform Transform

	mesh            *mesh
	tolerance       float64
	boundingRadius2 float64

	NumberOfDuplicatePoints int
	NumberOfDegeneracies    int
	Warnings                []string

	recursionWarned bool
	neighbors       []int // scratch for edge-neighbor queries
}

// NewTriangulator prepares a run over the given points. source may be nil for
// an unconstrained triangulation. opts may be nil, meaning DefaultOptions.
func NewTriangulator(points []Vec3, source *Source, opts *Options) *Triangulator {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Triangulator{
		opts:      opts,
		source:    source,
		inPoints:  points,
		numPoints: len(points),
	}
}

func (t *Triangulator) warnf(format string, args ...interface{}) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}

func (t *Triangulator) warnOnce(flag *bool, msg string) {
	if *flag {
		return
	}
	*flag = true
	t.warnf("%s", msg)
}

// Triangulate runs the full pipeline and assembles the result. Fewer than
// three input points yields an empty result; every other failure mode is
// recorded in the result's counters and warnings rather than aborting.
func (t *Triangulator) Triangulate() *Result {
	result := &Result{Points: t.inPoints}
	if t.numPoints < 3 {
		return result
	}

	if t.opts.Transform != nil && t.opts.BoundingTriangulation {
		t.warnf("bounding triangulation cannot be used with an input transform; output will not contain it")
	}
	if t.opts.Transform == nil && t.opts.ProjectionPlaneMode == BestFittingPlane &&
		t.opts.BoundingTriangulation {
		t.warnf("bounding triangulation cannot be used with the best fitting plane option; output will not contain it")
	}

	t.projectPoints()
	t.bootstrap()
	t.insertPoints()
	t.assemble(result)

	result.NumberOfDuplicatePoints = t.NumberOfDuplicatePoints
	result.NumberOfDegeneracies = t.NumberOfDegeneracies
	result.Warnings = t.Warnings
	return result
}

// bounding reports whether ring triangles are kept in the output. A transform
// (explicit or best-fitting) rules it out: the ring lives in transformed
// space while the output points are the untransformed input, so ring indices
// would dangle.
func (t *Triangulator) bounding() bool {
	return t.opts.BoundingTriangulation && t.transform == nil
}

// projectPoints builds the working point array: the input mapped through the
// caller's transform or the computed best-fitting plane, or copied verbatim.
// Only the input points are transformed; constraint topology references them
// by index and never needs coordinates of its own.
func (t *Triangulator) projectPoints() {
	switch {
	case t.opts.Transform != nil:
		t.transform = t.opts.Transform
	case t.opts.ProjectionPlaneMode == BestFittingPlane:
		t.transform = ComputeBestFittingPlane(t.inPoints)
	}

	t.points = make([]Vec3, t.numPoints, t.numPoints+8)
	if t.transform == nil {
		copy(t.points, t.inPoints)
	} else {
		for i, p := range t.inPoints {
			t.points[i] = t.transform.TransformPoint(p)
		}
	}
}

// bootstrap surrounds the input with eight ring points on a circle of radius
// Offset times the bounds diagonal, and seeds six triangles over them. Every
// input point lands inside this initial mesh, so the insertion walk always
// has somewhere to go.
func (t *Triangulator) bootstrap() {
	bmin, bmax := computeBounds(t.points)
	center := Vec3{
		(bmin.X + bmax.X) / 2,
		(bmin.Y + bmax.Y) / 2,
		(bmin.Z + bmax.Z) / 2,
	}
	length := boundsLength(bmin, bmax)
	radius := t.opts.Offset * length
	t.boundingRadius2 = 4 * radius * radius // (2r)^2
	t.tolerance = length * t.opts.Tolerance

	for i := 0; i < 8; i++ {
		angle := float64(i) * 45 * math.Pi / 180
		t.points = append(t.points, Vec3{
			center.X + radius*math.Cos(angle),
			center.Y + radius*math.Sin(angle),
			center.Z,
		})
	}

	t.mesh = newMesh(t.numPoints+8, 2*t.numPoints)
	n := t.numPoints
	seeds := [6][3]int{
		{n, n + 1, n + 2},
		{n + 2, n + 3, n + 4},
		{n + 4, n + 5, n + 6},
		{n + 6, n + 7, n},
		{n, n + 2, n + 6},
		{n + 2, n + 4, n + 6},
	}
	for _, s := range seeds {
		t.mesh.insertLinkedCell(s[0], s[1], s[2])
	}
}

// gcdTraversal visits every index of [0, npts) exactly once in pseudo-random
// order via ptId = (prime*idx + offset) mod npts, with prime coprime to npts.
// A coprime is guaranteed in [npts/2, npts), so the search loop terminates.
// No PRNG state, no repeats, fully reproducible.
type gcdTraversal struct {
	npts   int
	prime  int
	offset int
}

func newGCDTraversal(npts int) gcdTraversal {
	offset := npts / 2
	prime := offset + 1
	for gcd(prime, npts) != 1 {
		prime++
	}
	return gcdTraversal{npts: npts, prime: prime, offset: offset}
}

func (g gcdTraversal) pointId(idx int) int {
	return (g.prime*idx + g.offset) % g.npts
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// insertPoints runs the incremental insertion loop: locate each point, split
// the containing triangle (or the pair sharing the hit edge), then flip
// neighboring diagonals until the Delaunay criterion holds again.
func (t *Triangulator) insertPoints() {
	traversal := newGCDTraversal(t.numPoints)

	var pts, nei [3]int
	var tri [4]int
	var nodes [4][3]int
	tri[0] = 0

	for idx := 0; idx < t.numPoints; idx++ {
		ptId := idx
		if t.opts.RandomPointInsertion {
			ptId = traversal.pointId(idx)
		}
		x := t.points[ptId]
		nei[0] = -1 // where we are coming from... nowhere initially

		if found := t.findTriangle(x, &pts, tri[0], &nei); found >= 0 {
			tri[0] = found
			if nei[0] < 0 {
				// Interior hit: the triangle becomes three fanning around ptId.
				nodes[0] = [3]int{ptId, pts[0], pts[1]}
				t.mesh.removeReference(pts[2], tri[0])
				t.mesh.replaceCell(tri[0], nodes[0][0], nodes[0][1], nodes[0][2])
				t.mesh.resizeCellList(ptId, 1)
				t.mesh.addReference(ptId, tri[0])

				nodes[1] = [3]int{ptId, pts[1], pts[2]}
				tri[1] = t.mesh.insertLinkedCell(nodes[1][0], nodes[1][1], nodes[1][2])
				nodes[2] = [3]int{ptId, pts[2], pts[0]}
				tri[2] = t.mesh.insertLinkedCell(nodes[2][0], nodes[2][1], nodes[2][2])

				for i := 0; i < 3; i++ {
					t.checkEdge(ptId, x, nodes[i][1], nodes[i][2], tri[i], true, 1)
				}
			} else {
				// Edge hit: the two triangles sharing the edge become four.
				neiPts := t.mesh.cellPoints(nei[0])
				var p1, p2 int
				for i := 0; i < 3; i++ {
					if neiPts[i] != nei[1] && neiPts[i] != nei[2] {
						p1 = neiPts[i]
					}
					if pts[i] != nei[1] && pts[i] != nei[2] {
						p2 = pts[i]
					}
				}
				t.mesh.resizeCellList(p1, 1)
				t.mesh.resizeCellList(p2, 1)

				// Vertex orders keep all four triangles counterclockwise: the
				// found triangle is (nei[1], nei[2], p2) cyclically and the
				// neighbor runs the shared edge the other way.
				t.mesh.removeReference(nei[2], tri[0])
				t.mesh.removeReference(nei[2], nei[0])
				nodes[0] = [3]int{ptId, p2, nei[1]}
				t.mesh.replaceCell(tri[0], nodes[0][0], nodes[0][1], nodes[0][2])
				nodes[1] = [3]int{ptId, nei[1], p1}
				t.mesh.replaceCell(nei[0], nodes[1][0], nodes[1][1], nodes[1][2])
				t.mesh.resizeCellList(ptId, 2)
				t.mesh.addReference(ptId, tri[0])
				t.mesh.addReference(ptId, nei[0])
				tri[1] = nei[0]

				nodes[2] = [3]int{ptId, nei[2], p2}
				tri[2] = t.mesh.insertLinkedCell(nodes[2][0], nodes[2][1], nodes[2][2])
				nodes[3] = [3]int{ptId, p1, nei[2]}
				tri[3] = t.mesh.insertLinkedCell(nodes[3][0], nodes[3][1], nodes[3][2])

				for i := 0; i < 4; i++ {
					t.checkEdge(ptId, x, nodes[i][1], nodes[i][2], tri[i], true, 1)
				}
			}
		} else {
			tri[0] = 0 // walk failed; restart the next walk from anywhere
		}

		if ptId%1000 == 0 {
			if t.opts.Progress != nil {
				t.opts.Progress(float64(ptId) / float64(t.numPoints))
			}
			if t.opts.Abort != nil && t.opts.Abort() {
				break
			}
		}
	}
}

// assemble turns the mesh into the final cell arrays: recover constraints,
// drop ring-connected triangles, apply the alpha filter, rescue orphaned
// points, and emit whatever survived.
func (t *Triangulator) assemble(result *Result) {
	numTriangles := t.mesh.numberOfCells()

	var triUse []int
	if !t.bounding() || t.opts.Alpha > 0 || t.source != nil {
		if t.source != nil {
			triUse = t.recoverBoundary()
		} else {
			triUse = make([]int, numTriangles)
			for i := range triUse {
				triUse[i] = 1
			}
		}
	}

	// Delete triangles connected to the eight ring points (if not desired).
	if !t.bounding() {
		for ptId := t.numPoints; ptId < t.numPoints+8; ptId++ {
			for _, cell := range t.mesh.pointCells(ptId) {
				triUse[cell] = 0
			}
		}
	}

	if t.opts.Alpha > 0 {
		t.applyAlpha(triUse, numTriangles, result)
	}

	if !t.bounding() && t.opts.Alpha == 0 && t.source == nil {
		t.rescueOrphans(triUse)
	}

	if t.bounding() {
		result.Points = t.points
	} else {
		result.Points = t.inPoints
	}

	if triUse == nil {
		result.Triangles = append(result.Triangles, t.mesh.tris...)
		return
	}
	for i := 0; i < numTriangles; i++ {
		if triUse[i] != 0 {
			result.Triangles = append(result.Triangles, t.mesh.cellPoints(i))
		}
	}
}

// rescueOrphans repairs a connectivity defect of ring removal: an input point
// whose every incident triangle touches the ring would silently vanish from
// the output. For each such point we walk its incident triangles and swap a
// diagonal with the neighbor across any all-input edge, provided the two
// candidate triangles would agree in orientation, so the point ends up in at
// least one surviving triangle.
func (t *Triangulator) rescueOrphans(triUse []int) {
	for ptId := 0; ptId < t.numPoints; ptId++ {
		cells := append([]int(nil), t.mesh.pointCells(ptId)...)

		connected := false
		for _, cell := range cells {
			if triUse[cell] != 0 {
				connected = true
				break
			}
		}
		if connected {
			continue
		}

		// Only triangles scheduled for removal touch this point. Visit each
		// incident triangle's opposite edge and try to swap it away.
		for _, tri1 := range cells {
			triPts := t.mesh.cellPoints(tri1)
			var p1, p2 int
			switch ptId {
			case triPts[0]:
				p1, p2 = triPts[1], triPts[2]
			case triPts[1]:
				p1, p2 = triPts[2], triPts[0]
			default:
				p1, p2 = triPts[0], triPts[1]
			}

			// Only an edge between two input points is a swap candidate;
			// edges touching a ring point are left alone.
			if p1 >= t.numPoints || p2 >= t.numPoints {
				continue
			}

			t.neighbors = t.mesh.cellEdgeNeighbors(tri1, p1, p2, t.neighbors[:0])
			if len(t.neighbors) != 1 {
				fatalf("edge (%d, %d) is non-manifold", p1, p2)
			}
			tri2 := t.neighbors[0]

			neiPts := t.mesh.cellPoints(tri2)
			p3 := neiPts[2]
			if neiPts[0] != p1 && neiPts[0] != p2 {
				p3 = neiPts[0]
			} else if neiPts[1] != p1 && neiPts[1] != p2 {
				p3 = neiPts[1]
			}

			// The swap replaces edge (p1,p2) with diagonal (ptId,p3). Reject it
			// if the two candidate triangles disagree in orientation; that means
			// one of them would be inverted.
			n1 := triangleNormal(t.points[ptId], t.points[p1], t.points[p3])
			n2 := triangleNormal(t.points[ptId], t.points[p3], t.points[p2])
			if dot3(n1, n2) < 0 {
				continue
			}

			t.mesh.removeReference(p1, tri2)
			t.mesh.removeReference(p2, tri1)
			t.mesh.resizeCellList(ptId, 1)
			t.mesh.resizeCellList(p3, 1)
			t.mesh.addReference(ptId, tri2)
			t.mesh.addReference(p3, tri1)

			t.mesh.replaceCell(tri1, ptId, p1, p3)
			t.mesh.replaceCell(tri2, ptId, p3, p2)

			triUse[tri1] = boolToInt(p1 < t.numPoints && p3 < t.numPoints)
			triUse[tri2] = boolToInt(p3 < t.numPoints && p2 < t.numPoints)
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
