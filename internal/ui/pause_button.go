// internal/ui/pause_button.go
package ui

import (
	"grill-defense/pkg/render"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton кнопка паузы: две полосы во время игры, треугольник на паузе.
type PauseButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	IsPaused       bool
	PauseColor     color.RGBA
	PlayColor      color.RGBA
	shapes         *render.Shapes
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.RGBA, shapes *render.Shapes) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
		shapes:     shapes,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	rectSize := b.Size * float32(scale)

	if b.IsPaused {
		tri := []render.Point{
			{X: b.X - rectSize, Y: b.Y - rectSize*1.2},
			{X: b.X - rectSize, Y: b.Y + rectSize*1.2},
			{X: b.X + rectSize, Y: b.Y},
		}
		b.shapes.Fill(screen, tri, b.PlayColor)
		b.shapes.Stroke(screen, tri, 1, color.RGBA{255, 255, 255, 255})
		return
	}
	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	for _, x := range []float32{b.X - width - spacing/2, b.X + spacing/2} {
		vector.DrawFilledRect(screen, x, b.Y-height/2, width, height, b.PauseColor, true)
		vector.StrokeRect(screen, x, b.Y-height/2, width, height, 1, color.White, true)
	}
}

// IsClicked проверяет попадание в круг кнопки.
func (b *PauseButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	return dx*dx+dy*dy <= b.Size*b.Size*2.25
}

func (b *PauseButton) SetPaused(paused bool) {
	if b.IsPaused != paused {
		b.LastToggleTime = time.Now()
	}
	b.IsPaused = paused
}

// Click запускает анимацию нажатия.
func (b *PauseButton) Click() {
	b.LastClickTime = time.Now()
}
