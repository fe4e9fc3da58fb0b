package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	yaml "gopkg.in/yaml.v2"

	"github.com/osuushi/delaunay"
)

// Triangulate a point cloud from the command line. Input is newline separated
// points in the form "x y" or "x y z", from a file or stdin. Constraint
// polylines and polygons, being index lists over the input points, live in
// the optional YAML config along with any option overrides. The result is
// reported as counts plus diagnostics, and can be rendered to a PNG.

var (
	alpha     = kingpin.Flag("alpha", "Circumradius cutoff for alpha-shape filtering; 0 disables.").Default("0").Float64()
	tolerance = kingpin.Flag("tolerance", "Duplicate-point tolerance as a fraction of the bounds diagonal.").Default("1e-5").Float64()
	offset    = kingpin.Flag("offset", "Bounding ring radius factor.").Default("1.0").Float64()
	bounding  = kingpin.Flag("bounding", "Keep the bounding ring triangles in the output.").Bool()
	random    = kingpin.Flag("random", "Insert points in GCD-permuted pseudo-random order.").Bool()
	bestFit   = kingpin.Flag("best-fitting-plane", "Project onto the best fitting plane instead of xy.").Bool()
	config    = kingpin.Flag("config", "YAML file with option overrides and constraint topology.").String()
	pngPath   = kingpin.Flag("png", "Render the triangulation to this PNG file.").String()
	pngScale  = kingpin.Flag("scale", "Pixels per input unit when rendering.").Default("50").Float64()
	labels    = kingpin.Flag("labels", "Label triangles with readable names in the rendering.").Bool()
	inputPath = kingpin.Arg("input", "Points file; stdin if omitted.").String()
)

// fileConfig mirrors the option set plus the constraint topology. Only the
// fields present in the file override the flags.
type fileConfig struct {
	Alpha            *float64 `yaml:"alpha"`
	Tolerance        *float64 `yaml:"tolerance"`
	Offset           *float64 `yaml:"offset"`
	Bounding         *bool    `yaml:"bounding"`
	Random           *bool    `yaml:"random"`
	BestFittingPlane *bool    `yaml:"best_fitting_plane"`
	Lines            [][]int  `yaml:"lines"`
	Polygons         [][]int  `yaml:"polygons"`
}

func main() {
	kingpin.Parse()

	opts := delaunay.DefaultOptions()
	opts.Alpha = *alpha
	opts.Tolerance = *tolerance
	opts.Offset = *offset
	opts.BoundingTriangulation = *bounding
	opts.RandomPointInsertion = *random
	if *bestFit {
		opts.ProjectionPlaneMode = delaunay.BestFittingPlane
	}

	source := loadConfig(opts)
	points := readPoints(openInput())

	result, err := delaunay.TriangulateWithConstraints(points, source, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err))
		os.Exit(1)
	}

	fmt.Printf("Read %d points\n", len(points))
	fmt.Println(aurora.Green(fmt.Sprintf("%d triangles, %d lines, %d verts",
		len(result.Triangles), len(result.Lines), len(result.Verts))))
	if result.NumberOfDuplicatePoints > 0 || result.NumberOfDegeneracies > 0 {
		fmt.Println(aurora.Cyan(fmt.Sprintf("%d duplicate points, %d degeneracies",
			result.NumberOfDuplicatePoints, result.NumberOfDegeneracies)))
	}
	for _, w := range result.Warnings {
		fmt.Println(aurora.Yellow("warning: " + w))
	}

	if *pngPath != "" {
		c := result.Draw(*pngScale, *labels)
		if err := c.SavePNG(*pngPath); err != nil {
			fmt.Fprintln(os.Stderr, aurora.Red(err))
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *pngPath)
	}
}

// loadConfig applies the YAML config over the flag values and builds the
// constraint source, if any.
func loadConfig(opts *delaunay.Options) *delaunay.Source {
	if *config == "" {
		return nil
	}
	raw, err := ioutil.ReadFile(*config)
	if err != nil {
		kingpin.Fatalf("could not read config: %v", err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
		kingpin.Fatalf("could not parse config: %v", err)
	}

	if fc.Alpha != nil {
		opts.Alpha = *fc.Alpha
	}
	if fc.Tolerance != nil {
		opts.Tolerance = *fc.Tolerance
	}
	if fc.Offset != nil {
		opts.Offset = *fc.Offset
	}
	if fc.Bounding != nil {
		opts.BoundingTriangulation = *fc.Bounding
	}
	if fc.Random != nil {
		opts.RandomPointInsertion = *fc.Random
	}
	if fc.BestFittingPlane != nil {
		if *fc.BestFittingPlane {
			opts.ProjectionPlaneMode = delaunay.BestFittingPlane
		} else {
			opts.ProjectionPlaneMode = delaunay.XYPlane
		}
	}

	if len(fc.Lines) == 0 && len(fc.Polygons) == 0 {
		return nil
	}
	source := &delaunay.Source{}
	for _, line := range fc.Lines {
		source.Lines = append(source.Lines, delaunay.IndexPath(line))
	}
	for _, poly := range fc.Polygons {
		source.Polys = append(source.Polys, delaunay.IndexPath(poly))
	}
	return source
}

func openInput() *os.File {
	if *inputPath == "" {
		return os.Stdin
	}
	f, err := os.Open(*inputPath)
	if err != nil {
		kingpin.Fatalf("could not open input: %v", err)
	}
	return f
}

func readPoints(in *os.File) []delaunay.Vec3 {
	points := []delaunay.Vec3{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		points = append(points, parsePoint(line))
	}
	return points
}

func parsePoint(line string) delaunay.Vec3 {
	parts := strings.Fields(line)
	x, _ := strconv.ParseFloat(parts[0], 64)
	y, _ := strconv.ParseFloat(parts[1], 64)
	var z float64
	if len(parts) > 2 {
		z, _ = strconv.ParseFloat(parts[2], 64)
	}
	return delaunay.Vec3{X: x, Y: y, Z: z}
}
