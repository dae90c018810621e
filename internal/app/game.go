// internal/app/game.go
package app

import (
	"fmt"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/system"
	"grill-defense/internal/utils"
	"log"
)

// Game holds the session state and runs the systems in a fixed order.
type Game struct {
	Settings        config.Settings
	Lib             *defs.Library
	EventDispatcher *event.Dispatcher
	Rng             utils.RandomSource

	UnitSystem         *system.UnitSystem
	ProjectileSystem   *system.ProjectileSystem
	EnemySystem        *system.EnemySystem
	WaveSystem         *system.WaveSystem
	PhaseSystem        *system.PhaseSystem
	VisualEffectSystem *system.VisualEffectSystem

	SpeedMultiplier float64

	world *entity.World
	lanes []system.LaneBonus
	now   float64
}

// NewGame initializes a new game session. rng may be nil, then a PRNG seeded
// from settings is used.
func NewGame(settings config.Settings, lib *defs.Library, rng utils.RandomSource) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if lib == nil {
		return nil, fmt.Errorf("library cannot be nil")
	}
	if rng == nil {
		rng = utils.NewPRNGService(settings.Seed)
	}

	world := entity.NewWorld(settings.Lanes, settings.SlotsPerLane)
	world.Player = component.Player{
		HP:    settings.MaxPlayerHP(),
		MaxHP: settings.MaxPlayerHP(),
		Money: settings.StartMoney,
		Wave:  1,
	}

	d := event.NewDispatcher()
	g := &Game{
		Settings:        settings,
		Lib:             lib,
		EventDispatcher: d,
		Rng:             rng,
		SpeedMultiplier: 1,
		world:           world,
	}
	s := &g.Settings
	g.WaveSystem = system.NewWaveSystem(world, lib, s, rng, d)
	g.UnitSystem = system.NewUnitSystem(world, lib, s, rng, d)
	g.ProjectileSystem = system.NewProjectileSystem(world, s, d)
	g.EnemySystem = system.NewEnemySystem(world, lib, s, rng, d, g.WaveSystem)
	g.PhaseSystem = system.NewPhaseSystem(world, s, d)
	g.VisualEffectSystem = system.NewVisualEffectSystem(world, d)

	listener := &GameEventListener{game: g}
	d.SubscribeAll(listener, event.UpgradeRequested, event.SellRequested, event.SkillUnlockRequested, event.SkillResetRequested)

	g.placeCaptain()
	g.WaveSystem.Reset(0)
	g.UnitSystem.Reset(0)
	g.lanes = system.ResolveLanes(world, lib, s)

	log.Printf("Session %s: %d lanes x %d slots, player hp %d", world.SessionID, world.Lanes, world.SlotsPerLane, world.Player.HP)
	return g, nil
}

// World returns the live session state for reading.
func (g *Game) World() *entity.World {
	return g.world
}

// Library returns the loaded definitions.
func (g *Game) Library() *defs.Library {
	return g.Lib
}

// Phase returns the current phase.
func (g *Game) Phase() component.Phase {
	return g.PhaseSystem.Current()
}

// Lanes returns the lane bonuses resolved on the last tick.
func (g *Game) Lanes() []system.LaneBonus {
	return g.lanes
}

// Now returns the session clock in milliseconds.
func (g *Game) Now() float64 {
	return g.now
}

// Update progresses the game by one frame of deltaTime seconds.
// The session clock is frozen outside the playing phases.
func (g *Game) Update(deltaTime float64) {
	if !g.Phase().Playing() {
		return
	}
	elapsed := deltaTime * 1000 * g.SpeedMultiplier
	g.now += elapsed
	g.Tick(g.now, elapsed)
}

// Tick runs one simulation step at time now (ms) with elapsed ms since the last one.
// Outside the playing phases it does nothing.
func (g *Game) Tick(now, elapsed float64) {
	if !g.Phase().Playing() {
		return
	}
	if now > g.now {
		g.now = now
	}
	g.world.Now = now

	g.EnemySystem.UpdatePhases(now)
	g.WaveSystem.Update(now)

	lanes := system.ResolveLanes(g.world, g.Lib, &g.Settings)
	g.UnitSystem.Update(now, elapsed, lanes)
	g.ProjectileSystem.Update(now, elapsed)

	// юниты могли погибнуть, бонусы пересчитываются перед проходом врагов
	lanes = system.ResolveLanes(g.world, g.Lib, &g.Settings)
	g.EnemySystem.Update(now, elapsed, lanes)

	g.VisualEffectSystem.Update(now)
	if err := g.PhaseSystem.Evaluate(now); err != nil {
		log.Printf("Phase evaluation failed at %.0f ms: %v", now, err)
	}
	g.lanes = lanes
}

// SpawnEnemy puts an enemy of the given type on the board, scaled to the current wave.
func (g *Game) SpawnEnemy(enemyType string, lane int, x float64) (*component.Enemy, error) {
	if lane < 0 || lane >= g.world.Lanes {
		return nil, ErrNoSuchSlot
	}
	e := g.WaveSystem.NewEnemy(enemyType, lane, x, g.now)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, enemyType)
	}
	g.WaveSystem.Add(e)
	return e, nil
}

// placeCaptain ставит капитана в средний ряд, первый слот.
func (g *Game) placeCaptain() {
	if !g.Settings.CaptainEnabled {
		return
	}
	id, ok := g.Lib.CaptainID()
	if !ok {
		log.Println("No captain definition, skipping captain placement")
		return
	}
	slot, _ := g.world.Slot(g.world.Lanes/2, 0)
	g.placeUnit(slot, id)
}

// GameEventListener выполняет команды, пришедшие из UI через диспетчер.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	var err error
	switch data := e.Data.(type) {
	case event.SlotData:
		switch e.Type {
		case event.UpgradeRequested:
			err = l.game.UpgradeUnit(data.Lane, data.Slot)
		case event.SellRequested:
			err = l.game.SellUnit(data.Lane, data.Slot)
		case event.SkillUnlockRequested:
			err = l.game.UnlockSkill(data.Lane, data.Slot, data.SkillID)
		case event.SkillResetRequested:
			err = l.game.ResetSkills(data.Lane, data.Slot)
		}
	}
	if err != nil {
		log.Printf("%s rejected: %v", e.Type, err)
	}
}
