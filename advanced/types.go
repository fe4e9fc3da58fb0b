package advanced

// A Vec3 is a point in 3-space. The triangulation happens in the xy-plane;
// the z coordinate is carried through untouched so callers can triangulate
// terrain-like point clouds, but every in-plane predicate ignores it.
type Vec3 struct {
	X, Y, Z float64
}

// ProjectionPlaneMode selects how 3D input points are flattened before
// triangulating.
type ProjectionPlaneMode int

const (
	// XYPlane triangulates the points as-is in the xy-plane.
	XYPlane ProjectionPlaneMode = iota
	// BestFittingPlane computes a least-squares plane through the input and
	// rotates it onto the xy-plane first.
	BestFittingPlane
)

// Options configures a triangulation run. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// Alpha is the circumradius cutoff for alpha-shape filtering. Zero disables
	// filtering entirely, in which case the line and vertex outputs are empty.
	Alpha float64

	// Tolerance is a multiplier on the diagonal length of the input bounds. The
	// product is the distance within which a point counts as a duplicate of an
	// already-inserted point. Edge hits during the walk use a fixed tolerance
	// and do not depend on this value.
	Tolerance float64

	// Offset scales the radius of the eight-point bounding ring placed around
	// the input before insertion begins.
	Offset float64

	// BoundingTriangulation keeps the triangles incident to the bounding ring
	// in the output. It is incompatible with a Transform or with
	// BestFittingPlane; the run proceeds but records a warning and drops the
	// ring anyway.
	BoundingTriangulation bool

	// RandomPointInsertion visits the input points in a GCD-permuted
	// pseudo-random order rather than natural order. This scrambles spatial
	// locality, avoiding pathological walk costs on structured inputs, and is
	// fully reproducible.
	RandomPointInsertion bool

	// ProjectionPlaneMode is consulted only when Transform is nil.
	ProjectionPlaneMode ProjectionPlaneMode

	// Transform, when non-nil, maps the input points onto the triangulation
	// plane. Mutually exclusive with BestFittingPlane.
	Transform Transform

	// Progress, when non-nil, is called with the fraction of points inserted.
	// It is invoked every 1000 points; there is no back-pressure.
	Progress func(fractionDone float64)

	// Abort, when non-nil, is polled every 1000 points. Returning true stops
	// insertion; the partial mesh is still assembled into a valid result.
	Abort func() bool
}

// DefaultOptions returns the standard configuration: no alpha filtering,
// tolerance 1e-5, ring offset 1.0, xy-plane projection, natural insertion
// order.
func DefaultOptions() *Options {
	return &Options{
		Alpha:     0.0,
		Tolerance: 1e-5,
		Offset:    1.0,
	}
}

// A Source supplies constraint topology: polylines whose edges must appear in
// the triangulation, and polygons which additionally classify triangles as
// inside or outside. All indices refer to the input point list.
type Source struct {
	Lines []IndexPath
	Polys []IndexPath

	edges map[edgeKey]struct{}
}

// An IndexPath is a run of point indices. For a polyline, consecutive pairs
// are constraint edges. For a polygon the path is closed implicitly.
type IndexPath []int

type edgeKey struct {
	a, b int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// BuildLinks indexes the source's edges for IsEdge queries. It is called
// automatically at the start of constraint recovery; calling it again after
// mutating Lines or Polys refreshes the index.
func (s *Source) BuildLinks() {
	s.edges = make(map[edgeKey]struct{})
	for _, line := range s.Lines {
		for i := 0; i < len(line)-1; i++ {
			s.edges[newEdgeKey(line[i], line[i+1])] = struct{}{}
		}
	}
	for _, poly := range s.Polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			s.edges[newEdgeKey(poly[i], poly[(i+1)%n])] = struct{}{}
		}
	}
}

// IsEdge reports whether (a, b) is an edge of any source polyline or polygon.
func (s *Source) IsEdge(a, b int) bool {
	if s.edges == nil {
		s.BuildLinks()
	}
	_, ok := s.edges[newEdgeKey(a, b)]
	return ok
}

// A Result is the output of a triangulation run.
type Result struct {
	// Points backing the cell arrays below. Usually this is exactly the input
	// point list. When BoundingTriangulation is on and no transform was
	// applied, the eight ring points are appended after the input points.
	Points []Vec3

	// Triangles is the surviving triangle list, as triples of point indices.
	Triangles [][3]int

	// Lines contains the free alpha edges: edges of removed triangles whose
	// half-length passed the alpha test. Empty when Alpha is zero.
	Lines [][2]int

	// Verts contains the free alpha vertices: points incident to no surviving
	// triangle or line. Empty when Alpha is zero.
	Verts []int

	// NumberOfDuplicatePoints counts input points skipped because they
	// coincided (within tolerance) with an already-inserted point.
	NumberOfDuplicatePoints int

	// NumberOfDegeneracies counts points abandoned because the triangle walk
	// could not resolve their location.
	NumberOfDegeneracies int

	// Warnings records non-fatal conditions encountered during the run, such
	// as unrecovered constraint edges or flip recursion exhaustion.
	Warnings []string
}
