package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Two triangles sharing edge (0, 2):
//
//	3---2
//	| / |
//	0---1
func twoTriangleMesh() (*mesh, int, int) {
	m := newMesh(5, 4)
	t0 := m.insertLinkedCell(0, 1, 2)
	t1 := m.insertLinkedCell(0, 2, 3)
	return m, t0, t1
}

func TestMeshIncidence(t *testing.T) {
	m, t0, t1 := twoTriangleMesh()

	assert.Equal(t, 2, m.numberOfCells())
	assert.Equal(t, [3]int{0, 1, 2}, m.cellPoints(t0))
	assert.ElementsMatch(t, []int{t0, t1}, m.pointCells(0))
	assert.ElementsMatch(t, []int{t0}, m.pointCells(1))
	assert.ElementsMatch(t, []int{t0, t1}, m.pointCells(2))

	assert.True(t, m.isEdge(0, 2))
	assert.True(t, m.isEdge(2, 0))
	assert.True(t, m.isEdge(1, 2))
	assert.False(t, m.isEdge(1, 3))
	assert.False(t, m.isEdge(0, 4))
}

func TestMeshCellEdgeNeighbors(t *testing.T) {
	m, t0, t1 := twoTriangleMesh()

	// Interior edge: one neighbor from either side.
	assert.Equal(t, []int{t1}, m.cellEdgeNeighbors(t0, 0, 2, nil))
	assert.Equal(t, []int{t0}, m.cellEdgeNeighbors(t1, 0, 2, nil))

	// Boundary edge: no neighbors.
	assert.Empty(t, m.cellEdgeNeighbors(t0, 0, 1, nil))

	// t = -1 collects everything on the edge.
	assert.ElementsMatch(t, []int{t0, t1}, m.cellEdgeNeighbors(-1, 0, 2, nil))

	// The buffer is reused, not reallocated.
	buf := make([]int, 0, 4)
	out := m.cellEdgeNeighbors(t0, 0, 2, buf)
	assert.Equal(t, []int{t1}, out)
}

func TestMeshReplaceCell(t *testing.T) {
	m, t0, t1 := twoTriangleMesh()

	// Simulate a diagonal swap: (0,2) out, (1,3) in.
	m.removeReference(0, t1)
	m.removeReference(2, t0)
	m.addReference(1, t1)
	m.addReference(3, t0)
	m.replaceCell(t0, 0, 1, 3)
	m.replaceCell(t1, 1, 2, 3)

	assert.False(t, m.isEdge(0, 2))
	assert.True(t, m.isEdge(1, 3))
	assert.Equal(t, []int{t1}, m.cellEdgeNeighbors(t0, 1, 3, nil))
	assert.ElementsMatch(t, []int{t0, t1}, m.pointCells(1))
	assert.ElementsMatch(t, []int{t0, t1}, m.pointCells(3))
	assert.ElementsMatch(t, []int{t0}, m.pointCells(0))
	assert.ElementsMatch(t, []int{t1}, m.pointCells(2))
}

func TestMeshReplaceLinkedCell(t *testing.T) {
	m, t0, t1 := twoTriangleMesh()

	m.removeCellReference(t1)
	assert.ElementsMatch(t, []int{t0}, m.pointCells(0))
	assert.ElementsMatch(t, []int{t0}, m.pointCells(2))
	assert.Empty(t, m.pointCells(3))

	m.replaceLinkedCell(t1, 2, 3, 4)
	assert.Equal(t, [3]int{2, 3, 4}, m.cellPoints(t1))
	assert.ElementsMatch(t, []int{t0, t1}, m.pointCells(2))
	assert.ElementsMatch(t, []int{t1}, m.pointCells(3))
	assert.ElementsMatch(t, []int{t1}, m.pointCells(4))
	assert.True(t, m.isEdge(3, 4))
}

func TestMeshResizeCellList(t *testing.T) {
	m, t0, _ := twoTriangleMesh()

	// Purely a capacity hint; contents are untouched.
	before := append([]int(nil), m.pointCells(1)...)
	m.resizeCellList(1, 8)
	assert.Equal(t, before, m.pointCells(1))
	assert.GreaterOrEqual(t, cap(m.links[1]), len(before)+8)

	m.addReference(1, t0+10)
	assert.Contains(t, m.pointCells(1), t0+10)
}
