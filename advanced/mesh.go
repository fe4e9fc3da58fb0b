package advanced

// The mesh is a mutable planar triangle complex: an arena of triangles
// addressed by integer id, plus a point→triangles side table so incidence
// queries run without scanning. Triangles and cell lists reference each other
// cyclically; every edit below keeps the two sides consistent, so callers
// never edit tris or links directly.
//
// Triangle ids are stable across in-place replacement, which the insertion
// and recovery code relies on: replacing a triangle's vertices does not
// invalidate ids held elsewhere.
type mesh struct {
	tris  [][3]int
	links [][]int
}

// newMesh creates an empty mesh over a point space of the given size. Point
// coordinates live with the Triangulator; the mesh tracks topology only.
func newMesh(numPoints, triangleHint int) *mesh {
	return &mesh{
		tris:  make([][3]int, 0, triangleHint),
		links: make([][]int, numPoints),
	}
}

func (m *mesh) numberOfCells() int {
	return len(m.tris)
}

// cellPoints returns the vertex triple of a triangle.
func (m *mesh) cellPoints(t int) [3]int {
	return m.tris[t]
}

// pointCells returns the triangles incident to a vertex. The returned slice
// aliases the mesh's own storage; callers that edit the mesh while iterating
// must copy it first.
func (m *mesh) pointCells(v int) []int {
	return m.links[v]
}

// cellEdgeNeighbors appends to buf the triangles sharing edge (a, b) other
// than t, and returns the extended slice. Pass t = -1 to collect every
// triangle on the edge. In a manifold mesh the result has at most one entry
// (two for t = -1).
func (m *mesh) cellEdgeNeighbors(t, a, b int, buf []int) []int {
	for _, cell := range m.links[a] {
		if cell == t {
			continue
		}
		pts := m.tris[cell]
		if pts[0] == b || pts[1] == b || pts[2] == b {
			buf = append(buf, cell)
		}
	}
	return buf
}

// isEdge reports whether some triangle uses the edge (a, b).
func (m *mesh) isEdge(a, b int) bool {
	for _, cell := range m.links[a] {
		pts := m.tris[cell]
		if pts[0] == b || pts[1] == b || pts[2] == b {
			return true
		}
	}
	return false
}

// replaceCell rewrites a triangle's vertices without touching any cell list.
// The caller is responsible for the reference edits that go with it.
func (m *mesh) replaceCell(t, v0, v1, v2 int) {
	m.tris[t] = [3]int{v0, v1, v2}
}

// insertLinkedCell appends a new triangle and registers it with all three
// vertex cell lists, returning its id.
func (m *mesh) insertLinkedCell(v0, v1, v2 int) int {
	t := len(m.tris)
	m.tris = append(m.tris, [3]int{v0, v1, v2})
	m.addReference(v0, t)
	m.addReference(v1, t)
	m.addReference(v2, t)
	return t
}

// addReference records that triangle t uses vertex v.
func (m *mesh) addReference(v, t int) {
	m.links[v] = append(m.links[v], t)
}

// removeReference erases triangle t from vertex v's cell list.
func (m *mesh) removeReference(v, t int) {
	cells := m.links[v]
	for i, cell := range cells {
		if cell == t {
			cells[i] = cells[len(cells)-1]
			m.links[v] = cells[:len(cells)-1]
			return
		}
	}
}

// removeCellReference detaches a triangle from all three of its vertex cell
// lists, leaving the triangle record itself in place for replacement.
func (m *mesh) removeCellReference(t int) {
	pts := m.tris[t]
	m.removeReference(pts[0], t)
	m.removeReference(pts[1], t)
	m.removeReference(pts[2], t)
}

// replaceLinkedCell rewrites a triangle's vertices and registers the triangle
// with the new vertices' cell lists. The old references must already have
// been removed via removeCellReference.
func (m *mesh) replaceLinkedCell(t, v0, v1, v2 int) {
	m.tris[t] = [3]int{v0, v1, v2}
	m.addReference(v0, t)
	m.addReference(v1, t)
	m.addReference(v2, t)
}

// resizeCellList pre-grows a vertex cell list by delta entries. Purely an
// allocation hint; append would grow it anyway.
func (m *mesh) resizeCellList(v, delta int) {
	cells := m.links[v]
	if cap(cells)-len(cells) >= delta {
		return
	}
	grown := make([]int, len(cells), len(cells)+delta)
	copy(grown, cells)
	m.links[v] = grown
}
