// internal/state/menu_state.go
package state

import (
	"grill-defense/internal/app"
	"grill-defense/internal/config"
	"grill-defense/internal/sound"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Starter создаёт новую игровую сессию.
type Starter func() (*app.Game, error)

// MenuState: стартовый экран
type MenuState struct {
	sm      *StateMachine
	newGame Starter
	sound   *sound.Manager
	err     error
}

func NewMenuState(sm *StateMachine, newGame Starter, snd *sound.Manager) *MenuState {
	return &MenuState{sm: sm, newGame: newGame, sound: snd}
}

func (m *MenuState) Enter() {
	m.err = nil
}

func (m *MenuState) Update(deltaTime float64) {
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) && !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return
	}
	g, err := m.newGame()
	if err != nil {
		log.Printf("Failed to start game: %v", err)
		m.err = err
		return
	}
	m.sm.SetState(NewGameState(m.sm, g, m.sound, m.newGame))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	lines := []string{"GRILL DEFENSE", "", "Space: start", "1-9: pick from shop, click a slot to place", "U/S: upgrade/sell, O: overheat, B: combos, M: mute"}
	if m.err != nil {
		lines = append(lines, "", m.err.Error())
	}
	y := config.ScreenHeight/2 - len(lines)*10
	for _, l := range lines {
		b := text.BoundString(face, l)
		text.Draw(screen, l, face, (config.ScreenWidth-b.Dx())/2, y, config.TextLightColor)
		y += 20
	}
}

func (m *MenuState) Exit() {}
