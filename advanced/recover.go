package advanced

// Constraint recovery. The incremental insertion pays no attention to the
// source topology, so constraint edges are usually missing from the raw
// Delaunay mesh. For each missing edge we carve out its influence region (the
// triangles the edge crosses), retriangulate the two polygons on either side
// of the edge, and swap the new triangles in over the old ones. Nothing is
// written to the mesh until both halves have triangulated successfully, so a
// failed recovery leaves the mesh exactly as it was.

// recoverBoundary recovers every missing constraint edge, then marks each
// triangle inside or outside the constraint polygons. The returned slice has
// one entry per mesh triangle: 1 keep, 0 drop.
func (t *Triangulator) recoverBoundary() []int {
	t.source.BuildLinks()

	for _, line := range t.source.Lines {
		for i := 0; i < len(line)-1; i++ {
			p1, p2 := line[i], line[i+1]
			if !t.mesh.isEdge(p1, p2) && !t.recoverEdge(p1, p2) {
				t.warnf("could not recover constraint edge (%d, %d)", p1, p2)
			}
		}
	}
	for _, poly := range t.source.Polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			p1, p2 := poly[i], poly[(i+1)%n]
			if !t.mesh.isEdge(p1, p2) && !t.recoverEdge(p1, p2) {
				t.warnf("could not recover constraint edge (%d, %d)", p1, p2)
			}
		}
	}

	triUse := make([]int, t.mesh.numberOfCells())
	for i := range triUse {
		triUse[i] = 1
	}
	t.fillPolygons(triUse)
	return triUse
}

// influenceRegion is the submesh crossed by a constraint edge: the traversed
// triangles, and the left and right boundary chains running from p1 to p2.
type influenceRegion struct {
	tris       []int
	leftChain  []int
	rightChain []int
}

// suspectEdge is a freshly created interior edge that deserves one Delaunay
// check after recovery, along with the triangle and opposite point needed to
// run it.
type suspectEdge struct {
	cell, p1, p2, p3 int
}

var zAxis = Vec3{0, 0, 1}

// flatPoint fetches a working point with z forced to zero. The split planes
// used during recovery are vertical, so all evaluations happen in the
// xy-plane regardless of the points' height.
func (t *Triangulator) flatPoint(id int) Vec3 {
	p := t.points[id]
	p.Z = 0
	return p
}

// recoverEdge rebuilds the mesh so (p1, p2) exists as an edge. Reports
// whether it succeeded; on failure the mesh is untouched.
func (t *Triangulator) recoverEdge(p1, p2 int) bool {
	p1X := t.flatPoint(p1)
	p2X := t.flatPoint(p2)

	// The split plane contains the edge and is parallel to the z-axis.
	splitNormal, l := normalize3(cross3(sub3(p2X, p1X), zAxis))
	if l == 0 {
		// Usually means coincident points.
		return false
	}

	cellId, v1, v2, signX1, ok := t.findSplitTriangle(p1, p1X, p2X, splitNormal)
	if !ok {
		return false
	}

	region, ok := t.walkInfluence(cellId, p1, p2, p1X, splitNormal, v1, v2, signX1)
	if !ok {
		return false
	}

	// Triangulate both chains before touching the mesh. Each chain closes
	// through the recovered edge itself.
	leftTris, ok := t.boundedTriangulate(region.leftChain)
	if !ok {
		return false
	}
	rightTris, ok := t.boundedTriangulate(region.rightChain)
	if !ok {
		return false
	}
	if len(leftTris)+len(rightTris) != len(region.tris) {
		return false
	}

	// Edges on the influence polygon boundary keep their neighbors' Delaunay
	// status; only edges interior to the region need a check afterward.
	polysEdges := make(map[edgeKey]struct{})
	for _, chain := range [][]int{region.leftChain, region.rightChain} {
		n := len(chain)
		for i := 0; i < n; i++ {
			polysEdges[newEdgeKey(chain[i], chain[(i+1)%n])] = struct{}{}
		}
	}

	// Swap the new triangles in over the traversed ones, reusing their ids.
	var newEdges []suspectEdge
	j := 0
	for _, group := range [][][3]int{leftTris, rightTris} {
		for _, nt := range group {
			cellId := region.tris[j]
			j++
			t.mesh.removeCellReference(cellId)
			for k := 0; k < 3; k++ {
				t.mesh.resizeCellList(nt[k], 1)
			}
			t.mesh.replaceLinkedCell(cellId, nt[0], nt[1], nt[2])
			newEdges = t.collectSuspectEdges(newEdges, cellId, nt, polysEdges)
		}
	}

	// One non-recursive flip pass over the suspect edges. The first
	// successful flip invalidates the triangle and point ids recorded after
	// it, so stop there.
	for _, se := range newEdges {
		if t.checkEdge(se.p3, t.points[se.p3], se.p1, se.p2, se.cell, false, 1) {
			break
		}
	}
	return true
}

// findSplitTriangle looks for a triangle incident to p1 whose opposite edge
// straddles the split plane AND separates p1 from p2. That triangle is where
// the influence walk starts. signX1 reports which side of the split plane v1
// is on.
func (t *Triangulator) findSplitTriangle(p1 int, p1X, p2X, splitNormal Vec3) (cellId, v1, v2, signX1 int, ok bool) {
	for _, cell := range t.mesh.pointCells(p1) {
		pts := t.mesh.cellPoints(cell)
		j := 0
		for ; j < 3; j++ {
			if pts[j] == p1 {
				break
			}
		}
		v1 = pts[(j+1)%3]
		v2 = pts[(j+2)%3]
		x1 := t.flatPoint(v1)
		x2 := t.flatPoint(v2)
		signX1 = planeSign(splitNormal, p1X, x1)
		signX2 := planeSign(splitNormal, p1X, x2)
		if signX1 == signX2 {
			continue
		}

		// The two vertices straddle the split plane; now check that their edge
		// separates p1 from p2.
		sepNormal, l := normalize3(cross3(sub3(x2, x1), zAxis))
		if l == 0 {
			// Bad mesh.
			return 0, 0, 0, 0, false
		}
		if planeSign(sepNormal, x1, p1X) != planeSign(sepNormal, x1, p2X) {
			return cell, v1, v2, signX1, true
		}
	}
	return 0, 0, 0, 0, false
}

func planeSign(normal, origin, x Vec3) int {
	if planeEvaluate(normal, origin, x) > 0 {
		return 1
	}
	return -1
}

// walkInfluence crosses edge-adjacent triangles from the starting triangle
// toward p2, recording the traversed triangles and distributing each opposite
// vertex onto the left or right chain by its side of the split plane. Both
// chains run from p1 to p2.
func (t *Triangulator) walkInfluence(cellId, p1, p2 int, p1X, splitNormal Vec3, v1, v2, signX1 int) (influenceRegion, bool) {
	region := influenceRegion{
		tris:       []int{cellId},
		leftChain:  []int{p1},
		rightChain: []int{p1},
	}
	if signX1 > 0 {
		region.rightChain = append(region.rightChain, v1)
		region.leftChain = append(region.leftChain, v2)
	} else {
		region.leftChain = append(region.leftChain, v1)
		region.rightChain = append(region.rightChain, v2)
	}

	for v1 != p2 {
		t.neighbors = t.mesh.cellEdgeNeighbors(cellId, v1, v2, t.neighbors[:0])
		if len(t.neighbors) != 1 {
			// Mesh is folded or degenerate.
			t.warnf("non-manifold edge (%d, %d) while recovering constraint", v1, v2)
			return region, false
		}
		cellId = t.neighbors[0]
		region.tris = append(region.tris, cellId)
		pts := t.mesh.cellPoints(cellId)
		for j := 0; j < 3; j++ {
			if pts[j] == v1 || pts[j] == v2 {
				continue
			}
			// Found the point opposite the current edge (v1, v2).
			if pts[j] == p2 {
				v1 = p2 // stops the walk
				region.rightChain = append(region.rightChain, p2)
				region.leftChain = append(region.leftChain, p2)
			} else if planeEvaluate(splitNormal, p1X, t.flatPoint(pts[j])) > 0 {
				v1 = pts[j]
				region.rightChain = append(region.rightChain, v1)
			} else {
				v2 = pts[j]
				region.leftChain = append(region.leftChain, v2)
			}
			break
		}
	}
	return region, true
}

// collectSuspectEdges records the edges of a new triangle that are neither
// constraint edges nor influence-polygon boundary edges. A triangle with any
// constrained edge is left alone entirely; flipping its other edges could
// rotate a diagonal into the constraint.
func (t *Triangulator) collectSuspectEdges(newEdges []suspectEdge, cellId int, nt [3]int, polysEdges map[edgeKey]struct{}) []suspectEdge {
	for e := 0; e < 3; e++ {
		ep1 := nt[e]
		ep2 := nt[(e+1)%3]
		ep3 := nt[(e+2)%3]
		if t.source.IsEdge(ep1, ep2) || t.source.IsEdge(ep2, ep3) || t.source.IsEdge(ep3, ep1) {
			continue
		}
		if _, ok := polysEdges[newEdgeKey(ep1, ep2)]; ok {
			continue
		}
		newEdges = append(newEdges, suspectEdge{cell: cellId, p1: ep1, p2: ep2, p3: ep3})
	}
	return newEdges
}

// fillPolygons classifies triangles against the constraint polygons. For each
// polygon edge, the triangle on the outward side seeds a flood fill of
// "outside" marks; the fill spreads across any edge whose far triangle is
// still unvisited, and the polygon's own edges block it because their inner
// triangles are pre-marked. The first polygon defines the outer boundary;
// later polygons carve holes. Unvisited triangles end up inside.
//
// Marks in triUse during the fill: 1 unvisited, 0 outside, -1 tentatively
// inside.
func (t *Triangulator) fillPolygons(triUse []int) {
	// If any polygon edge is missing from the mesh, in/out is undecidable.
	for _, poly := range t.source.Polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			if !t.mesh.isEdge(poly[i], poly[(i+1)%n]) {
				t.warnf("edge (%d, %d) not recovered, polygon fill not possible", poly[i], poly[(i+1)%n])
				return
			}
		}
	}

	var currentFront, nextFront []int
	for _, poly := range t.source.Polys {
		currentFront = currentFront[:0]
		n := len(poly)
		for i := 0; i < n; i++ {
			p1 := poly[i]
			p2 := poly[(i+1)%n]
			x1 := t.points[p1]
			x2 := t.points[p2]
			// The outward direction is the edge vector crossed with +z.
			negDir := cross3(sub3(x2, x1), zAxis)

			t.neighbors = t.mesh.cellEdgeNeighbors(-1, p1, p2, t.neighbors[:0])
			for _, cellId := range t.neighbors {
				pts := t.mesh.cellPoints(cellId)
				k := 0
				for ; k < 3; k++ {
					if pts[k] != p1 && pts[k] != p2 {
						break
					}
				}
				if planeEvaluate(negDir, x1, t.flatPoint(pts[k])) > 0 {
					triUse[cellId] = 0
					currentFront = append(currentFront, cellId)
				} else {
					triUse[cellId] = -1
				}
			}
		}

		// Fill "outside" marks from the seeds.
		for len(currentFront) > 0 {
			nextFront = nextFront[:0]
			for _, cellId := range currentFront {
				pts := t.mesh.cellPoints(cellId)
				for k := 0; k < 3; k++ {
					p1 := pts[k]
					p2 := pts[(k+1)%3]
					t.neighbors = t.mesh.cellEdgeNeighbors(cellId, p1, p2, t.neighbors[:0])
					for _, neiId := range t.neighbors {
						if triUse[neiId] == 1 {
							triUse[neiId] = 0
							nextFront = append(nextFront, neiId)
						}
					}
				}
			}
			currentFront, nextFront = nextFront, currentFront
		}
	}

	// Whatever the fills never reached is inside.
	for i := range triUse {
		if triUse[i] == -1 {
			triUse[i] = 1
		}
	}
}
