package advanced

// The alpha filter keeps only simplices that are "dense" at scale alpha:
// triangles whose circumradius is within alpha, then, from the removed
// triangles, edges whose half-length is within alpha, then vertices left
// incident to nothing. The result is the alpha shape of the point set.
//
// The criterion is evaluated in the points' own plane on the untransformed
// coordinates whenever the simplex is built purely from input points, so a
// projection transform never distorts the radius test. Only simplices
// touching the ring (possible when the bounding triangulation is kept) fall
// back to the working coordinates, where the ring actually exists.

func (t *Triangulator) applyAlpha(triUse []int, numTriangles int, result *Result) {
	alpha2 := t.opts.Alpha * t.opts.Alpha

	pointUse := make([]bool, t.numPoints+8)

	// Pass 1: drop triangles whose circumradius exceeds alpha.
	for i := 0; i < numTriangles; i++ {
		if triUse[i] != 1 {
			continue
		}
		pts := t.mesh.cellPoints(i)
		x1, x2, x3 := t.alphaTrianglePoints(pts)
		if circumradius2In3D(x1, x2, x3) > alpha2 {
			triUse[i] = 0
		} else {
			pointUse[pts[0]] = true
			pointUse[pts[1]] = true
			pointUse[pts[2]] = true
		}
	}

	// Pass 2: from removed triangles, emit edges short enough to survive on
	// their own. The neighbor > cellId ordering emits each shared edge once.
	for cellId := 0; cellId < numTriangles; cellId++ {
		if triUse[cellId] != 0 {
			continue
		}
		pts := t.mesh.cellPoints(cellId)
		for i := 0; i < 3; i++ {
			ap1 := pts[i]
			ap2 := pts[(i+1)%3]

			if !t.bounding() && (ap1 >= t.numPoints || ap2 >= t.numPoints) {
				continue
			}

			t.neighbors = t.mesh.cellEdgeNeighbors(cellId, ap1, ap2, t.neighbors[:0])
			emit := len(t.neighbors) < 1 ||
				(t.neighbors[0] > cellId && triUse[t.neighbors[0]] == 0)
			if !emit {
				continue
			}

			x1, x2 := t.alphaEdgePoints(ap1, ap2)
			if distance2(x1, x2)*0.25 <= alpha2 {
				pointUse[ap1] = true
				pointUse[ap2] = true
				result.Lines = append(result.Lines, [2]int{ap1, ap2})
			}
		}
	}

	// Pass 3: points used by nothing become free vertices.
	for ptId := 0; ptId < t.numPoints+8; ptId++ {
		if (ptId < t.numPoints || t.bounding()) && !pointUse[ptId] {
			result.Verts = append(result.Verts, ptId)
		}
	}
}

// alphaTrianglePoints picks the coordinate space for the radius test:
// untransformed input coordinates when all three corners are input points,
// working coordinates when a ring point is involved.
func (t *Triangulator) alphaTrianglePoints(pts [3]int) (x1, x2, x3 Vec3) {
	if pts[0] < t.numPoints && pts[1] < t.numPoints && pts[2] < t.numPoints {
		return t.inPoints[pts[0]], t.inPoints[pts[1]], t.inPoints[pts[2]]
	}
	return t.points[pts[0]], t.points[pts[1]], t.points[pts[2]]
}

func (t *Triangulator) alphaEdgePoints(ap1, ap2 int) (x1, x2 Vec3) {
	if ap1 < t.numPoints && ap2 < t.numPoints {
		return t.inPoints[ap1], t.inPoints[ap2]
	}
	return t.points[ap1], t.points[ap2]
}
