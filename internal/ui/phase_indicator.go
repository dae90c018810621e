// internal/ui/phase_indicator.go
package ui

import (
	"grill-defense/internal/component"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var phaseColors = map[component.Phase]color.RGBA{
	component.PhaseRunning:        {80, 200, 90, 255},
	component.PhaseVictoryPending: {250, 204, 21, 255},
	component.PhaseVictory:        {70, 130, 220, 255},
	component.PhaseDefeat:         {220, 40, 40, 255},
	component.PhasePaused:         {130, 130, 130, 255},
}

// PhaseIndicator кружок, цвет которого показывает фазу сессии.
// Пока победа ожидает подтверждения, кружок пульсирует.
type PhaseIndicator struct {
	X, Y   float32
	Radius float32
}

func NewPhaseIndicator(x, y, radius float32) *PhaseIndicator {
	return &PhaseIndicator{X: x, Y: y, Radius: radius}
}

// PhaseColor returns the indicator color of a phase.
func PhaseColor(p component.Phase) color.RGBA {
	if c, ok := phaseColors[p]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

func (i *PhaseIndicator) Draw(screen *ebiten.Image, phase component.Phase) {
	r := i.Radius
	if phase == component.PhaseVictoryPending {
		t := float64(time.Now().UnixMilli()) / 1000
		r *= float32(1 + 0.2*math.Sin(t*8))
	}
	vector.DrawFilledCircle(screen, i.X, i.Y, r, PhaseColor(phase), true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
