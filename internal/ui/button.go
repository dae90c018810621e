// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor         = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	buttonDisabledColor = color.RGBA{R: 45, G: 45, B: 50, A: 255}
	buttonActiveColor   = color.RGBA{R: 180, G: 140, B: 20, A: 255}
	buttonBorderColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	buttonTextDisabled  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect     image.Rectangle
	Text     string
	Disabled bool
	Active   bool
}

// Contains reports whether the point is inside the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку с текстом по центру.
func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	bg := buttonColor
	fg := color.Color(color.White)
	switch {
	case b.Disabled:
		bg, fg = buttonDisabledColor, buttonTextDisabled
	case b.Active:
		bg = buttonActiveColor
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 1, buttonBorderColor, true)

	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(screen, b.Text, face, textX, textY, fg)
}
