// internal/ui/combo_book.go
package ui

import (
	"fmt"
	"grill-defense/internal/defs"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// ComboBook отображает окно с комбо дорожек.
type ComboBook struct {
	IsVisible bool
	X, Y      float32
	Width     float32
	Height    float32
	fontFace  font.Face
	combos    []defs.ComboDefinition
}

// NewComboBook создает новую книгу комбо.
func NewComboBook(x, y, width, height float32, fontFace font.Face, combos []defs.ComboDefinition) *ComboBook {
	return &ComboBook{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		fontFace: fontFace,
		combos:   combos,
	}
}

// Toggle переключает видимость книги.
func (cb *ComboBook) Toggle() {
	cb.IsVisible = !cb.IsVisible
}

// comboEffects описывает бонусы комбо коротким текстом.
func comboEffects(c defs.ComboDefinition) string {
	var parts []string
	if c.SpeedMultiplier != 0 && c.SpeedMultiplier != 1 {
		parts = append(parts, fmt.Sprintf("interval x%.2g", c.SpeedMultiplier))
	}
	if c.DamageMultiplier != 0 && c.DamageMultiplier != 1 {
		parts = append(parts, fmt.Sprintf("damage x%.2g", c.DamageMultiplier))
	}
	if c.RangeMultiplier != 0 && c.RangeMultiplier != 1 {
		parts = append(parts, fmt.Sprintf("range x%.2g", c.RangeMultiplier))
	}
	return strings.Join(parts, ", ")
}

// Draw отрисовывает книгу. active содержит теги комбо, включённые хотя бы на одной дорожке,
// families: семейства, присутствующие на доске.
func (cb *ComboBook) Draw(screen *ebiten.Image, active map[string]bool, families map[string]bool) {
	if !cb.IsVisible {
		return
	}

	whiteColor := color.RGBA{255, 255, 255, 255}
	grayColor := color.RGBA{100, 100, 100, 255}
	goldColor := color.RGBA{250, 204, 21, 255}

	bgColor := color.RGBA{R: 20, G: 20, B: 30, A: 230}
	vector.DrawFilledRect(screen, cb.X, cb.Y, cb.Width, cb.Height, bgColor, false)
	borderColor := color.RGBA{R: 70, G: 100, B: 120, A: 255}
	vector.StrokeRect(screen, cb.X, cb.Y, cb.Width, cb.Height, 2, borderColor, false)

	title := "Combos"
	titleBounds := text.BoundString(cb.fontFace, title)
	titleX := cb.X + (cb.Width-float32(titleBounds.Dx()))/2
	titleY := cb.Y + 30
	text.Draw(screen, title, cb.fontFace, int(titleX), int(titleY), whiteColor)

	lineHeight := float32(cb.fontFace.Metrics().Height.Ceil())
	startY := titleY + lineHeight*2
	spaceWidth := text.BoundString(cb.fontFace, " ").Dx()

	for i, combo := range cb.combos {
		currentX := cb.X + 20
		currentY := startY + float32(i)*lineHeight*1.5

		tagColor := grayColor
		if active[combo.Tag] {
			tagColor = goldColor
		}
		text.Draw(screen, combo.Tag, cb.fontFace, int(currentX), int(currentY), tagColor)
		currentX += 140

		for j, family := range combo.Families {
			familyColor := grayColor
			if families[family] {
				familyColor = whiteColor
			}
			text.Draw(screen, family, cb.fontFace, int(currentX), int(currentY), familyColor)
			currentX += float32(text.BoundString(cb.fontFace, family).Dx() + spaceWidth)
			if j < len(combo.Families)-1 {
				text.Draw(screen, "+", cb.fontFace, int(currentX), int(currentY), grayColor)
				currentX += float32(text.BoundString(cb.fontFace, "+").Dx() + spaceWidth)
			}
		}

		text.Draw(screen, comboEffects(combo), cb.fontFace, int(cb.X+cb.Width/2+60), int(currentY), tagColor)
	}
}
