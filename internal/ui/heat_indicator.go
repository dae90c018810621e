// internal/ui/heat_indicator.go
package ui

import (
	"grill-defense/internal/utils"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	heatBarWidth  = 118
	heatBarHeight = 12
	borderWidth   = 1
)

var (
	heatFillColor     = color.RGBA{230, 110, 30, 220}
	heatReadyColor    = color.RGBA{255, 60, 20, 255}
	heatOverheatColor = color.RGBA{255, 220, 60, 255}
	borderColor       = color.White
)

// HeatIndicator шкала жара. Полная шкала мигает, во время перегрева полоса тает.
type HeatIndicator struct {
	X, Y float32
}

// NewHeatIndicator создает новый индикатор жара.
func NewHeatIndicator(x, y float32) *HeatIndicator {
	return &HeatIndicator{X: x, Y: y}
}

// heatFill возвращает долю заполнения полосы.
// Во время перегрева показывается оставшееся время вместо жара.
func heatFill(heat, maxHeat, now, overheatUntil, overheatMs float64) float64 {
	if overheatUntil > now && overheatMs > 0 {
		return math.Min(1, (overheatUntil-now)/overheatMs)
	}
	if maxHeat <= 0 {
		return 0
	}
	return utils.Clamp(heat/maxHeat, 0, 1)
}

// Draw отрисовывает индикатор.
func (i *HeatIndicator) Draw(screen *ebiten.Image, heat, maxHeat, now, overheatUntil, overheatMs float64) {
	vector.StrokeRect(screen, i.X, i.Y, heatBarWidth, heatBarHeight, borderWidth, borderColor, true)

	fill := heatFill(heat, maxHeat, now, overheatUntil, overheatMs)
	c := heatFillColor
	switch {
	case overheatUntil > now:
		c = heatOverheatColor
	case fill >= 1 && int(now/250)%2 == 0:
		c = heatReadyColor
	}
	fillWidth := float32(float64(heatBarWidth-borderWidth*2) * fill)
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fillWidth, heatBarHeight-borderWidth*2, c, true)
	}
}
