package advanced

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/osuushi/delaunay/dbg"
)

const drawPadding = 20

// Draw renders the triangulation at the given scale: surviving triangles
// filled and stroked, alpha lines and vertices drawn on top. With labeled
// set, each triangle gets a readable name at its centroid, which is handy
// when tracing ids through a debug session.
func (r *Result) Draw(scale float64, labeled bool) *gg.Context {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range r.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for _, tri := range r.Triangles {
		a, b, d := r.Points[tri[0]], r.Points[tri[1]], r.Points[tri[2]]
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(d.X, d.Y)
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	c.SetRGB(1, 0.5, 0)
	for _, line := range r.Lines {
		a, b := r.Points[line[0]], r.Points[line[1]]
		c.DrawLine(a.X, a.Y, b.X, b.Y)
		c.Stroke()
	}

	c.SetRGB(1, 0, 1)
	for _, v := range r.Verts {
		p := r.Points[v]
		c.DrawCircle(p.X, p.Y, 3/scale)
		c.Fill()
	}

	if labeled {
		// Text has to be drawn in device space or the y-flip mirrors it.
		type label struct {
			name   string
			dx, dy float64
		}
		labels := make([]label, 0, len(r.Triangles))
		for i, tri := range r.Triangles {
			a, b, d := r.Points[tri[0]], r.Points[tri[1]], r.Points[tri[2]]
			dx, dy := c.TransformPoint((a.X+b.X+d.X)/3, (a.Y+b.Y+d.Y)/3)
			labels = append(labels, label{dbg.Tri(i), dx, dy})
		}
		c.Identity()
		c.SetRGB(1, 1, 1)
		for _, l := range labels {
			c.DrawStringAnchored(l.name, l.dx, l.dy, 0.5, 0.5)
		}
	}
	return c
}

// This is for debugging purposes only

func (r *Result) dbgDraw(scale float64) {
	c := r.Draw(scale, true)
	c.SavePNG("/tmp/delaunay_mesh.png")
	imgcat.CatFile("/tmp/delaunay_mesh.png", os.Stdout)
}
