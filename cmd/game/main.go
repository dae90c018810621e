// cmd/game/main.go
package main

import (
	"flag"
	"grill-defense/internal/app"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/event"
	"grill-defense/internal/sound"
	"grill-defense/internal/state"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("settings", "", "path to a YAML settings file")
	libraryPath := flag.String("library", "", "path to a JSON definitions file")
	skipMenu := flag.Bool("play", true, "start straight into a game instead of the menu")
	pprofAddr := flag.String("pprof", "", "address for the pprof server, e.g. localhost:6060")
	volume := flag.Float64("volume", 0.6, "sound volume from 0 to 1")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	lib, err := defs.DefaultLibrary()
	if *libraryPath != "" {
		lib, err = defs.LoadLibrary(*libraryPath)
	}
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	snd := sound.NewManager(*volume)
	if err := snd.Initialize(); err != nil {
		log.Printf("Sound disabled: %v", err)
	}
	defer snd.Cleanup()

	// Каждая новая сессия получает своё зерно, если оно не задано явно.
	newGame := func() (*app.Game, error) {
		s := settings
		if s.Seed == 0 {
			s.Seed = time.Now().UnixNano()
		}
		g, err := app.NewGame(s, lib, nil)
		if err != nil {
			return nil, err
		}
		g.EventDispatcher.Subscribe(event.SoundRequested, snd)
		return g, nil
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if *skipMenu {
		g, err := newGame()
		if err != nil {
			log.Fatalf("Failed to start game: %v", err)
		}
		sm.SetState(state.NewGameState(sm, g, snd, newGame))
	} else {
		sm.SetState(state.NewMenuState(sm, newGame, snd))
	}

	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Grill Defense")
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
