package advanced

import "github.com/pkg/errors"

// Almost nothing in the triangulator is fatal: duplicate points, degenerate
// walks, and unrecoverable constraint edges all degrade gracefully into
// counters and warnings. The exception is a programming-contract violation,
// like finding a non-manifold edge where the mesh must be manifold. Threading
// errors out of the deeply recursive code for that one case would add a ton
// of complexity, so we panic with a typed error and let the public API
// recover it.

type TriangulateError error

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
