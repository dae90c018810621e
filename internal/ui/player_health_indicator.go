// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	HealthSegments   = 7
	HealthBarHeight  = 10.0
	HealthBarSpacing = 2.0
	HealthTotalWidth = 120.0
)

var (
	healthEmptyColor    = color.RGBA{50, 50, 50, 255}
	healthFullColor     = color.RGBA{80, 200, 90, 255}
	healthWarningColor  = color.RGBA{230, 190, 40, 255}
	healthCriticalColor = color.RGBA{220, 50, 40, 255}
	healthDepletedColor = color.RGBA{90, 30, 30, 255}
	uiBorderColor       = color.RGBA{200, 200, 200, 255}
)

// PlayerHealthIndicator отображает здоровье игрока в виде сегментированного бара.
type PlayerHealthIndicator struct {
	X, Y float32
}

// NewPlayerHealthIndicator создает новый индикатор здоровья.
func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// Draw рисует индикатор здоровья игрока в виде сегментированного бара.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, health int, maxHealth int) {
	percentage := float32(0)
	if maxHealth > 0 && health > 0 {
		percentage = float32(health) / float32(maxHealth)
	}

	segmentWidth := (HealthTotalWidth - float32(HealthSegments-1)*HealthBarSpacing) / float32(HealthSegments)
	currentX := i.X
	emptySegments, activeColor := healthState(percentage)

	for j := 0; j < HealthSegments; j++ {
		fillColor := activeColor
		if j < emptySegments {
			fillColor = healthEmptyColor
		}
		if health <= 0 {
			fillColor = healthDepletedColor
		}
		vector.DrawFilledRect(screen, currentX, i.Y, segmentWidth, HealthBarHeight, fillColor, false)
		vector.StrokeRect(screen, currentX, i.Y, segmentWidth, HealthBarHeight, 1, uiBorderColor, false)
		currentX += segmentWidth + HealthBarSpacing
	}
}

// healthState определяет, сколько сегментов должно быть пустым и какой цвет у активных.
// Сегменты пустеют слева направо.
func healthState(percentage float32) (int, color.RGBA) {
	activeSegments := 0
	for k := 0; k < HealthSegments; k++ {
		if percentage > float32(k)/float32(HealthSegments) {
			activeSegments++
		}
	}
	emptyCount := HealthSegments - activeSegments

	var activeColor color.RGBA
	switch {
	case percentage <= 0:
		activeColor = healthDepletedColor
	case percentage < 0.20:
		activeColor = healthCriticalColor
	case percentage < 0.50:
		activeColor = healthWarningColor
	default:
		activeColor = healthFullColor
	}
	return emptyCount, activeColor
}
