// pkg/render/shapes.go
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Point вершина многоугольника в экранных координатах.
type Point struct {
	X, Y float32
}

// RegularPolygon returns the vertices of a regular polygon centred at (cx, cy).
// rotation is in radians.
func RegularPolygon(cx, cy, radius float32, sides int, rotation float64) []Point {
	pts := make([]Point, sides)
	for i := 0; i < sides; i++ {
		angle := 2*math.Pi/float64(sides)*float64(i) + rotation
		pts[i] = Point{
			X: cx + radius*float32(math.Cos(angle)),
			Y: cy + radius*float32(math.Sin(angle)),
		}
	}
	return pts
}

// Shapes рисует залитые и обведённые многоугольники через DrawTriangles,
// переиспользуя буферы вершин между вызовами.
type Shapes struct {
	img      *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
	strokeVs []ebiten.Vertex
	strokeIs []uint16
}

// NewShapes creates a shape painter.
func NewShapes() *Shapes {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return &Shapes{
		img:      img,
		fillVs:   make([]ebiten.Vertex, 0, 18),
		fillIs:   make([]uint16, 0, 18),
		strokeVs: make([]ebiten.Vertex, 0, 36),
		strokeIs: make([]uint16, 0, 36),
	}
}

func polygonPath(pts []Point) *vector.Path {
	path := &vector.Path{}
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(p.X, p.Y)
		} else {
			path.LineTo(p.X, p.Y)
		}
	}
	path.Close()
	return path
}

func paint(vs []ebiten.Vertex, c color.RGBA) {
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
}

// Fill заливает многоугольник.
func (s *Shapes) Fill(target *ebiten.Image, pts []Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	s.fillVs, s.fillIs = polygonPath(pts).AppendVerticesAndIndicesForFilling(s.fillVs[:0], s.fillIs[:0])
	paint(s.fillVs, c)
	target.DrawTriangles(s.fillVs, s.fillIs, s.img, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// Stroke обводит многоугольник линией заданной ширины.
func (s *Shapes) Stroke(target *ebiten.Image, pts []Point, width float32, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	s.strokeVs, s.strokeIs = polygonPath(pts).AppendVerticesAndIndicesForStroke(s.strokeVs[:0], s.strokeIs[:0], &vector.StrokeOptions{
		Width: width,
	})
	paint(s.strokeVs, c)
	target.DrawTriangles(s.strokeVs, s.strokeIs, s.img, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
