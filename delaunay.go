// A 2D constrained Delaunay triangulation package for Go.
//
// This package takes an unordered set of points (optionally projected onto a
// plane), triangulates them so that every triangle satisfies the local
// empty-circumcircle property, and optionally restricts the result by
// constraint edges, polygon boundaries, and an alpha-radius cutoff that keeps
// only sufficiently dense simplices.
package delaunay

import "github.com/osuushi/delaunay/advanced"

type Vec3 = advanced.Vec3
type Options = advanced.Options
type Source = advanced.Source
type IndexPath = advanced.IndexPath
type Result = advanced.Result
type Transform = advanced.Transform
type ProjectionPlaneMode = advanced.ProjectionPlaneMode

const (
	XYPlane          = advanced.XYPlane
	BestFittingPlane = advanced.BestFittingPlane
)

// DefaultOptions returns the standard configuration. See advanced.Options for
// what each knob does.
func DefaultOptions() *Options {
	return advanced.DefaultOptions()
}

// Triangulate computes the Delaunay triangulation of the points. Fewer than
// three points yields an empty result and no error. Degenerate and duplicate
// points are skipped and counted on the result rather than failing the run.
//
// opts may be nil for the defaults. See the readme for more details.
func Triangulate(points []Vec3, opts *Options) (*Result, error) {
	return TriangulateWithConstraints(points, nil, opts)
}

// TriangulateWithConstraints additionally embeds the source's polyline edges
// in the triangulation and classifies triangles against its polygons: the
// first polygon bounds the kept region, subsequent polygons carve holes.
// Bounding polygons must wind counterclockwise and holes clockwise; the fill
// treats the right-hand side of each directed edge as outside. Source indices
// refer to the input point list.
func TriangulateWithConstraints(points []Vec3, source *Source, opts *Options) (result *Result, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return advanced.NewTriangulator(points, source, opts).Triangulate(), nil
}
