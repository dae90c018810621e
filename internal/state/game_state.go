// internal/state/game_state.go
package state

import (
	"fmt"
	"grill-defense/internal/app"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/sound"
	"grill-defense/internal/system"
	"grill-defense/internal/ui"
	"grill-defense/pkg/render"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const messageDuration = 2 * time.Second

var shopKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}

// GameState: состояние игры
type GameState struct {
	sm       *StateMachine
	game     *app.Game
	sound    *sound.Manager
	newGame  Starter
	renderer *system.RenderSystem
	fontFace font.Face

	infoPanel   *ui.InfoPanel
	shop        *ui.Shop
	comboBook   *ui.ComboBook
	health      *ui.PlayerHealthIndicator
	heat        *ui.HeatIndicator
	wave        *ui.WaveIndicator
	phase       *ui.PhaseIndicator
	pauseButton *ui.PauseButton
	speedButton *ui.SpeedButton

	lastClickTime time.Time
	message       string
	messageUntil  time.Time
}

func NewGameState(sm *StateMachine, g *app.Game, snd *sound.Manager, newGame Starter) *GameState {
	face := basicfont.Face7x13
	shapes := render.NewShapes()
	lib := g.Library()
	world := g.World()

	shopRows := (len(lib.ShopUnits()) + 11) / 12
	shopY := config.ScreenHeight - shopRows*(config.ShopRowHeight+3) - 6

	return &GameState{
		sm:          sm,
		game:        g,
		sound:       snd,
		newGame:     newGame,
		renderer:    system.NewRenderSystem(world, lib, &g.Settings, face),
		fontFace:    face,
		infoPanel:   ui.NewInfoPanel(face, face, g.EventDispatcher, g.Settings.SkillResetCost),
		shop:        ui.NewShop(6, shopY, config.ShopRowHeight, face, lib),
		comboBook:   ui.NewComboBook(200, 100, 800, 420, face, lib.Combos),
		health:      ui.NewPlayerHealthIndicator(10, 12),
		heat:        ui.NewHeatIndicator(10, 32),
		wave:        ui.NewWaveIndicator(config.ScreenWidth/2, 40, lib.Spawns.BossEvery),
		phase:       ui.NewPhaseIndicator(config.ScreenWidth/2+60, 35, 8),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-40, 35, 12, config.SlotStroke, config.HPBarUnit, shapes),
		speedButton: ui.NewSpeedButton(config.ScreenWidth-90, 35, 12, []color.RGBA{config.HPBarUnit, config.CoinColor, config.OverheatColor}, shapes),
	}
}

func (g *GameState) Enter() {
	g.pauseButton.SetPaused(false)
}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update(g.game)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.pause()
		return
	}
	g.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && time.Since(g.lastClickTime) >= config.ClickDebounceTime*time.Millisecond {
		g.handleClick(ebiten.CursorPosition())
		g.lastClickTime = time.Now()
		if g.sm.Current() != g {
			return
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.shop.Select(-1)
		g.infoPanel.Hide()
	}

	g.game.Update(deltaTime)
}

func (g *GameState) handleKeys() {
	for i, k := range shopKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.shop.Select(i)
		}
	}
	if lane, slot, ok := g.infoPanel.Target(); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyU) {
			g.report(g.game.UpgradeUnit(lane, slot))
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.report(g.game.SellUnit(lane, slot))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.report(g.game.ActivateOverheat())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.report(g.game.Revive())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.report(g.game.NextWave())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.game.SpeedMultiplier = g.speedButton.ToggleState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.comboBook.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		if g.sound.ToggleMute() {
			g.say("Sound off")
		} else {
			g.say("Sound on")
		}
	}
	if g.game.Phase() == component.PhaseDefeat && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.sm.SetState(NewMenuState(g.sm, g.newGame, g.sound))
	}
}

// handleClick разбирает клик: кнопки HUD, панель, магазин, затем доска.
func (g *GameState) handleClick(x, y int) {
	switch {
	case g.pauseButton.IsClicked(x, y):
		g.pause()
	case g.speedButton.IsClicked(x, y):
		g.game.SpeedMultiplier = g.speedButton.ToggleState()
	case g.infoPanel.Contains(x, y):
		// панель обрабатывает свои кнопки сама
	case g.shop.Click(x, y):
	default:
		g.handleBoardClick(x, y)
	}
}

func (g *GameState) handleBoardClick(x, y int) {
	world := g.game.World()
	lane, slot, ok := system.SlotAt(world, x, y)
	if !ok {
		g.infoPanel.Hide()
		return
	}
	if world.Unit(lane, slot) != nil {
		g.infoPanel.SetTarget(lane, slot)
		return
	}
	if unitType := g.shop.Selected(); unitType != "" {
		if err := g.game.PlaceUnit(lane, slot, unitType); err != nil {
			g.report(err)
			return
		}
		g.infoPanel.SetTarget(lane, slot)
		return
	}
	g.infoPanel.Hide()
}

func (g *GameState) pause() {
	if err := g.game.Pause(); err != nil {
		g.report(err)
		return
	}
	g.pauseButton.Click()
	g.pauseButton.SetPaused(true)
	g.sm.SetState(NewPauseState(g.sm, g))
}

// Resume снимает паузу в сессии. Вызывается из PauseState.
func (g *GameState) Resume() error {
	g.pauseButton.Click()
	return g.game.Resume()
}

// IsPauseClick reports whether a click hits the pause button.
func (g *GameState) IsPauseClick(x, y int) bool {
	return g.pauseButton.IsClicked(x, y)
}

func (g *GameState) report(err error) {
	if err != nil {
		log.Printf("Command rejected: %v", err)
		g.say(err.Error())
	}
}

func (g *GameState) say(msg string) {
	g.message = msg
	g.messageUntil = time.Now().Add(messageDuration)
}

func (g *GameState) Draw(screen *ebiten.Image) {
	var selected *component.Slot
	if lane, slot, ok := g.infoPanel.Target(); ok {
		selected, _ = g.game.World().Slot(lane, slot)
	}
	g.renderer.Draw(screen, g.game.Now(), g.game.Lanes(), selected)
	g.drawHUD(screen)
	g.shop.Draw(screen, g.game.Library(), g.game.World().Player.Money)
	g.infoPanel.Draw(screen, g.game)
	tags, families := g.activeCombos()
	g.comboBook.Draw(screen, tags, families)
}

func (g *GameState) activeCombos() (map[string]bool, map[string]bool) {
	tags := make(map[string]bool)
	families := make(map[string]bool)
	for _, b := range g.game.Lanes() {
		for _, t := range b.Tags {
			tags[t] = true
		}
		for f := range b.Families {
			families[f] = true
		}
	}
	return tags, families
}

func (g *GameState) drawHUD(screen *ebiten.Image) {
	p := g.game.World().Player
	s := &g.game.Settings

	g.health.Draw(screen, p.HP, p.MaxHP)
	g.heat.Draw(screen, p.Heat, s.MaxHeat, g.game.Now(), p.OverheatUntil, s.OverheatMs)
	text.Draw(screen, fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP), g.fontFace, 140, 22, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("$%d   Score %d", p.Money, p.Score), g.fontFace, 140, 42, config.CoinColor)
	g.wave.Draw(screen, p.Wave, g.fontFace)
	g.phase.Draw(screen, g.game.Phase())
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)

	var banner string
	switch g.game.Phase() {
	case component.PhaseVictoryPending:
		banner = "Hold the lanes..."
	case component.PhaseVictory:
		banner = fmt.Sprintf("Wave cleared! N: next wave (+$%d)", s.WaveBonusBase+s.WaveBonusStep*p.Wave)
	case component.PhaseDefeat:
		banner = fmt.Sprintf("Defeat. R: revive ($%d), Enter: new game", s.ReviveCost)
	}
	if banner != "" {
		b := text.BoundString(g.fontFace, banner)
		text.Draw(screen, banner, g.fontFace, (config.ScreenWidth-b.Dx())/2, 70, config.SelectedStroke)
	}
	if time.Now().Before(g.messageUntil) {
		text.Draw(screen, g.message, g.fontFace, 140, 62, config.HPBarEnemy)
	}
}

func (g *GameState) Exit() {}
