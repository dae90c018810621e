// internal/ui/speed_button.go
package ui

import (
	"grill-defense/pkg/render"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Множители скорости, которые перебирает кнопка.
var SpeedSteps = []float64{1, 2, 4}

// SpeedButton кнопка ускорения: два треугольника, цвет по текущей скорости.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.RGBA
	CurrentState   int
	shapes         *render.Shapes
}

func NewSpeedButton(x, y, size float32, stateColors []color.RGBA, shapes *render.Shapes) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
		shapes:      shapes,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)
	c := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8
	for _, shift := range []float32{0, offset} {
		tri := []render.Point{
			{X: b.X - width + shift, Y: b.Y - height/2},
			{X: b.X + shift, Y: b.Y},
			{X: b.X - width + shift, Y: b.Y + height/2},
		}
		b.shapes.Fill(screen, tri, c)
		b.shapes.Stroke(screen, tri, 1, color.RGBA{255, 255, 255, 255})
	}
}

// IsClicked использует круг для определения попадания, так как форма сложная.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

// ToggleState переключает скорость и возвращает новый множитель.
func (b *SpeedButton) ToggleState() float64 {
	b.CurrentState = (b.CurrentState + 1) % len(SpeedSteps)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
	return SpeedSteps[b.CurrentState]
}
