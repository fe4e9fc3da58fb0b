package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts mesh entity ids into random readable names. Triangle ids get
// reused across in-place replacement and vertex ids overlap them, so raw
// integers are painful to track through a debug session; "BraveMarmot" is
// not. Names are generated lazily and memoized for the life of the process.

var triMemo map[int]string
var vertMemo map[int]string

func init() {
	triMemo = make(map[int]string)
	vertMemo = make(map[int]string)
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Tri names a triangle id.
func Tri(id int) string {
	return name(triMemo, id)
}

// Vert names a vertex id.
func Vert(id int) string {
	return name(vertMemo, id)
}

func name(memo map[int]string, id int) string {
	if id < 0 {
		return "Ø"
	}
	if r, ok := memo[id]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[id] = r
	return r
}
