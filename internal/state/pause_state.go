// internal/state/pause_state.go
package state

import (
	"grill-defense/internal/config"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// pausable: состояние, которое умеет снимать паузу
type pausable interface {
	State
	Resume() error
	IsPauseClick(x, y int) bool
}

type PauseState struct {
	stateMachine  *StateMachine
	previousState pausable
}

func NewPauseState(sm *StateMachine, prevState pausable) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF9)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if s.previousState.IsPauseClick(ebiten.CursorPosition()) {
			unpause = true
		}
	}
	if !unpause {
		return
	}
	if err := s.previousState.Resume(); err != nil {
		log.Printf("Resume failed: %v", err)
	}
	s.stateMachine.SetState(s.previousState)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.PauseOverlay, false)
	pauseText := "PAUSED"
	b := text.BoundString(basicfont.Face7x13, pauseText)
	text.Draw(screen, pauseText, basicfont.Face7x13, (config.ScreenWidth-b.Dx())/2, config.ScreenHeight/2, config.TextLightColor)
}

func (s *PauseState) Exit() {}
