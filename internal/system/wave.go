// internal/system/wave.go
package system

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/utils"
	"log"
	"math"
)

// WaveSystem выпускает врагов по таймеру текущей волны.
type WaveSystem struct {
	world      *entity.World
	lib        *defs.Library
	settings   *config.Settings
	rng        utils.RandomSource
	dispatcher *event.Dispatcher
	lastSpawn  float64
}

func NewWaveSystem(w *entity.World, lib *defs.Library, settings *config.Settings, rng utils.RandomSource, d *event.Dispatcher) *WaveSystem {
	return &WaveSystem{
		world:      w,
		lib:        lib,
		settings:   settings,
		rng:        rng,
		dispatcher: d,
	}
}

// Reset restarts the spawn timer, used when a wave starts.
func (s *WaveSystem) Reset(now float64) {
	s.lastSpawn = now
	log.Printf("Wave %d started (session %s)", s.world.Player.Wave, s.world.SessionID)
	s.dispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Wave: s.world.Player.Wave}})
}

// SpawnInterval интервал появления врагов для волны.
func (s *WaveSystem) SpawnInterval(wave int) float64 {
	return math.Max(s.settings.SpawnMinMs, s.settings.SpawnBaseMs-s.settings.SpawnStepMs*float64(wave))
}

func (s *WaveSystem) Update(now float64) {
	if !s.settings.AutoSpawn {
		return
	}
	if now-s.lastSpawn < s.SpawnInterval(s.world.Player.Wave) {
		return
	}
	s.lastSpawn = now

	enemyType := s.RollEnemyType()
	lane := s.rng.Intn(s.world.Lanes)
	if e := s.NewEnemy(enemyType, lane, s.settings.SpawnX, now); e != nil {
		s.Add(e)
	}
}

// RollEnemyType выбирает тип врага: на каждой N-й волне с шансом выходит босс,
// если другого босса на поле нет, иначе взвешенный выбор из таблицы.
func (s *WaveSystem) RollEnemyType() string {
	table := s.lib.Spawns
	wave := s.world.Player.Wave
	if table.BossID != "" && table.BossEvery > 0 && wave > 0 && wave%table.BossEvery == 0 {
		if s.rng.Float64() < table.BossChance && !s.world.HasEnemyType(table.BossID) {
			return table.BossID
		}
	}
	return utils.ChooseWeighted(s.rng, table.Eligible(wave))
}

// NewEnemy builds an enemy of the given type scaled to the current wave.
// It returns nil for an unknown type.
func (s *WaveSystem) NewEnemy(enemyType string, lane int, x, now float64) *component.Enemy {
	def, ok := s.lib.Enemy(enemyType)
	if !ok {
		log.Printf("Error: Enemy definition not found for ID: %s", enemyType)
		return nil
	}

	hp := def.HP * (1 + s.settings.WaveHPStep*float64(s.world.Player.Wave))
	interval := def.Interval
	if interval <= 0 {
		interval = s.settings.EnemyAttackInterval
	}
	e := &component.Enemy{
		ID:             s.world.NewEntity(),
		Type:           def.ID,
		Behavior:       def.Behavior,
		Lane:           lane,
		X:              x,
		HP:             hp,
		MaxHP:          hp,
		Speed:          def.Speed,
		Damage:         def.Damage,
		PlayerDamage:   def.PlayerDamage,
		Bounty:         def.Bounty,
		AttackInterval: interval,
		LastAttackTime: now,
		LastHealTime:   now,
		LastHitTime:    -1,
	}
	if def.Behavior == defs.BehaviorPhaser {
		e.PhaseOffset = s.rng.Float64() * def.PhasePeriodMs
	}
	return e
}

// Add puts the enemy on the board and announces it.
func (s *WaveSystem) Add(e *component.Enemy) {
	s.world.Enemies = append(s.world.Enemies, e)
	s.dispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{ID: e.ID, Type: e.Type, Lane: e.Lane, X: e.X, Bounty: e.Bounty}})
}
