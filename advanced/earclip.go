package advanced

import "github.com/golang/geo/r2"

// A bounded polygon triangulator for the influence-region chains. The chains
// are small simple polygons, so ear clipping is enough here; the Delaunay
// quality of the replacement triangles is restored afterward by the suspect
// edge checks. This is deliberately not a Delaunay algorithm: it must only
// produce *some* triangulation whose boundary is exactly the polygon, so the
// recovered edge survives.

// boundedTriangulate triangulates the polygon given by the point ids, read in
// the working xy-plane. It emits exactly len(ids)-2 counterclockwise
// triangles, or reports failure (degenerate or self-touching polygons refuse
// to clip). The two chains of an influence region wind in opposite
// directions, so normalizing the output keeps the mesh orientation
// consistent.
func (t *Triangulator) boundedTriangulate(ids []int) ([][3]int, bool) {
	n := len(ids)
	if n < 3 {
		return nil, false
	}

	coords := make([]r2.Point, n)
	for i, id := range ids {
		coords[i] = t.points[id].xy()
	}

	if n == 3 {
		area := doubledArea(coords)
		if area == 0 {
			return nil, false
		}
		if area < 0 {
			return [][3]int{{ids[0], ids[2], ids[1]}}, true
		}
		return [][3]int{{ids[0], ids[1], ids[2]}}, true
	}

	// The chains arrive in whichever winding the walk produced; clip ears
	// relative to the polygon's own orientation.
	orient := 1.0
	if doubledArea(coords) < 0 {
		orient = -1.0
	}

	remaining := make([]int, n) // indices into ids/coords
	for i := range remaining {
		remaining[i] = i
	}

	tris := make([][3]int, 0, n-2)
	for len(remaining) > 3 {
		clipped := false
		for k := 0; k < len(remaining); k++ {
			ia := remaining[(k+len(remaining)-1)%len(remaining)]
			ib := remaining[k]
			ic := remaining[(k+1)%len(remaining)]
			if !isEar(coords, remaining, ia, ib, ic, orient) {
				continue
			}
			if orient < 0 {
				tris = append(tris, [3]int{ids[ia], ids[ic], ids[ib]})
			} else {
				tris = append(tris, [3]int{ids[ia], ids[ib], ids[ic]})
			}
			remaining = append(remaining[:k], remaining[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// No ear means the polygon is degenerate or self-touching.
			return nil, false
		}
	}
	if orient < 0 {
		tris = append(tris, [3]int{ids[remaining[0]], ids[remaining[2]], ids[remaining[1]]})
	} else {
		tris = append(tris, [3]int{ids[remaining[0]], ids[remaining[1]], ids[remaining[2]]})
	}
	return tris, true
}

// isEar reports whether the corner (ia, ib, ic) is convex in the polygon's
// winding and contains none of the other remaining vertices.
func isEar(coords []r2.Point, remaining []int, ia, ib, ic int, orient float64) bool {
	a, b, c := coords[ia], coords[ib], coords[ic]
	if orient*cross2(b.Sub(a), c.Sub(b)) <= 0 {
		return false
	}
	for _, j := range remaining {
		if j == ia || j == ib || j == ic {
			continue
		}
		if pointInTriangle(coords[j], a, b, c, 0) {
			return false
		}
	}
	return true
}

func cross2(a, b r2.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// pointInTriangle tests containment (boundary included, widened by tol) in
// the xy-plane, winding-agnostic.
func pointInTriangle(p, a, b, c r2.Point, tol float64) bool {
	d1 := cross2(b.Sub(a), p.Sub(a))
	d2 := cross2(c.Sub(b), p.Sub(b))
	d3 := cross2(a.Sub(c), p.Sub(c))
	hasNeg := d1 < -tol || d2 < -tol || d3 < -tol
	hasPos := d1 > tol || d2 > tol || d3 > tol
	return !(hasNeg && hasPos)
}

// doubledArea is twice the signed area of the polygon; positive means
// counterclockwise.
func doubledArea(coords []r2.Point) float64 {
	var sum float64
	for i, p := range coords {
		q := coords[(i+1)%len(coords)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum
}
