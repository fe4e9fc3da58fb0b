package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"

	"github.com/golang/geo/r2"
)

// This file parses the svg fixtures and outputs point lists. It is not a full
// (or even correct) svg parser: it expects exactly one polygon and converts
// it into a counterclockwise vertex list. If anything goes wrong, it exits
// via log.Fatalf.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Vec3 {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}
	if len(polygons) > 1 {
		log.Fatalf("More than one polygon found in fixture %q", name)
	}
	polygonEl := polygons[0]

	pointString := polygonEl.Attributes["points"]
	pointStrings := strings.Split(pointString, " ")
	points := make([]Vec3, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		if pointString == "" {
			continue
		}

		pair := strings.Split(pointString, ",")
		if len(pair) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", pair[0], err)
		}
		y, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", pair[1], err)
		}
		points = append(points, Vec3{x, y, 0})
	}

	// Ensure that the polygon is counterclockwise; the fill stage treats the
	// right-hand side of each edge as outside.
	coords := make([]r2.Point, len(points))
	for i, p := range points {
		coords[i] = p.xy()
	}
	if doubledArea(coords) < 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}
