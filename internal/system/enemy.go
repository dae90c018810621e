// internal/system/enemy.go
package system

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/types"
	"grill-defense/internal/utils"
	"log"
	"math"
)

const (
	maxDamageReduction = 0.9
	offspringOffset    = 2.0
)

// EnemySystem проход по врагам: движение, атаки по юнитам, особые способности,
// смерти и прорывы к игроку.
type EnemySystem struct {
	world      *entity.World
	lib        *defs.Library
	settings   *config.Settings
	rng        utils.RandomSource
	dispatcher *event.Dispatcher
	waves      *WaveSystem

	unitHits  *unitLedger
	reflected *enemyLedger
	heals     map[types.EntityID]float64
	spawns    []*component.Enemy
}

func NewEnemySystem(w *entity.World, lib *defs.Library, settings *config.Settings, rng utils.RandomSource, d *event.Dispatcher, waves *WaveSystem) *EnemySystem {
	return &EnemySystem{
		world:      w,
		lib:        lib,
		settings:   settings,
		rng:        rng,
		dispatcher: d,
		waves:      waves,
		unitHits:   newUnitLedger(),
		reflected:  newEnemyLedger(),
		heals:      make(map[types.EntityID]float64),
	}
}

// UpdatePhases пересчитывает окно неуязвимости фазовых врагов.
// Вызывается в начале тика, до прохода юнитов.
func (s *EnemySystem) UpdatePhases(now float64) {
	for _, e := range s.world.Enemies {
		if e.Behavior != defs.BehaviorPhaser {
			continue
		}
		def := s.lib.Enemies[e.Type]
		if def.PhasePeriodMs <= 0 {
			e.Phasing = false
			continue
		}
		phase := math.Mod(now+e.PhaseOffset, def.PhasePeriodMs)
		if phase < 0 {
			phase += def.PhasePeriodMs
		}
		e.Phasing = phase < def.PhaseDurationMs
	}
}

func (s *EnemySystem) Update(now, elapsed float64, lanes []LaneBonus) {
	ratio := elapsed / config.FrameMs

	for _, e := range s.world.Enemies {
		if !e.Alive() {
			continue
		}
		def, ok := s.lib.Enemy(e.Type)
		if !ok {
			log.Printf("EnemySystem: no definition for enemy type %s", e.Type)
			continue
		}
		e.Slowed = lanes[e.Lane].Slow > 0

		switch e.Behavior {
		case defs.BehaviorMelee, defs.BehaviorBoss, defs.BehaviorPhaser:
			s.advanceOrStrike(e, def, now, ratio, lanes)
		case defs.BehaviorSilencer:
			s.silence(e, def, now, ratio, lanes)
		case defs.BehaviorSummoner:
			if s.advanceOrStrike(e, def, now, ratio, lanes) && s.rng.Float64() < def.SummonChance*ratio {
				s.summon(e, def, now)
			}
		case defs.BehaviorHealer:
			s.advanceOrStrike(e, def, now, ratio, lanes)
			s.healNearby(e, def, now)
		}
	}

	s.commitHeals()
	s.reflected.apply(s.world.Enemies, now)
	for _, e := range s.world.Enemies {
		if e.HP <= 0 {
			s.die(e, now)
		}
	}
	for _, e := range s.world.Enemies {
		if e.Alive() && e.X <= 0 {
			s.leak(e)
		}
	}

	s.unitHits.apply(s.world)
	removeDeadUnits(s.world, s.dispatcher)

	kept := s.world.Enemies[:0]
	for _, e := range s.world.Enemies {
		if e.HP > 0 && e.X > 0 {
			kept = append(kept, e)
		}
	}
	clear(s.world.Enemies[len(kept):])
	s.world.Enemies = kept

	for _, e := range s.spawns {
		s.waves.Add(e)
	}
	s.spawns = s.spawns[:0]
}

// blocker returns the living unit standing on the enemy's slot.
func (s *EnemySystem) blocker(e *component.Enemy) *component.Slot {
	idx := s.world.SlotIndexAt(e.X)
	if idx < 0 {
		return nil
	}
	slot := s.world.Slots[e.Lane][idx]
	if slot.Unit == nil || slot.Unit.HP <= 0 {
		return nil
	}
	return slot
}

// advanceOrStrike атакует юнита, стоящего на пути, или двигается к игроку.
// Возвращает true, если враг сдвинулся.
func (s *EnemySystem) advanceOrStrike(e *component.Enemy, def defs.EnemyDefinition, now, ratio float64, lanes []LaneBonus) bool {
	if slot := s.blocker(e); slot != nil {
		e.Attacking = true
		if now-e.LastAttackTime >= e.AttackInterval {
			e.LastAttackTime = now
			s.strike(e, def, slot)
		}
		return false
	}
	e.Attacking = false
	s.move(e, ratio, lanes)
	return true
}

func (s *EnemySystem) move(e *component.Enemy, ratio float64, lanes []LaneBonus) {
	e.X -= e.Speed * (1 - lanes[e.Lane].Slow) * ratio
	if e.X < 0 {
		e.X = 0
	}
}

// strike наносит урон юниту. Отражение считается от сырого урона,
// снижение урона применяется после. Фазовый враг отражения не получает.
func (s *EnemySystem) strike(e *component.Enemy, def defs.EnemyDefinition, slot *component.Slot) {
	u := slot.Unit
	x := s.world.SlotCenter(slot.Index)
	udef := s.lib.Units[u.Type]

	if e.Behavior == defs.BehaviorBoss && udef.Hazardous {
		s.unitHits.add(u.ID, u.HP)
		requestText(s.dispatcher, "CHOMP!", slot.Lane, x)
		requestSound(s.dispatcher, event.SoundDamage, "")
		return
	}

	raw := e.Damage
	if reflect := udef.Reflect + raw*skillTotal(s.lib, u, defs.EffectThorns); reflect > 0 && !e.Phasing {
		s.reflected.add(e.ID, reflect, 0)
		requestSound(s.dispatcher, event.SoundReflect, u.Type)
	}
	reduction := math.Min(maxDamageReduction, skillTotal(s.lib, u, defs.EffectDamageReduction))
	s.unitHits.add(u.ID, raw*(1-reduction))
	requestEffect(s.dispatcher, event.EffectHit, slot.Lane, x)
	requestSound(s.dispatcher, event.SoundDamage, "")
}

// silence: шаман останавливается перед юнитом в пределах lookahead слотов
// и периодически оглушает его.
func (s *EnemySystem) silence(e *component.Enemy, def defs.EnemyDefinition, now, ratio float64, lanes []LaneBonus) {
	idx := int(math.Floor(e.X / s.world.SlotWidth()))
	if idx >= s.world.SlotsPerLane {
		idx = s.world.SlotsPerLane - 1
	}

	var target *component.Slot
	for k := 0; k <= def.Lookahead; k++ {
		j := idx - k
		if j < 0 {
			break
		}
		if slot := s.world.Slots[e.Lane][j]; slot.Unit != nil && slot.Unit.HP > 0 {
			target = slot
			break
		}
	}
	if target == nil {
		e.Attacking = false
		s.move(e, ratio, lanes)
		return
	}

	e.Attacking = true
	if now-e.LastAttackTime < e.AttackInterval {
		return
	}
	e.LastAttackTime = now
	u := target.Unit
	u.StunnedUntil = math.Max(u.StunnedUntil, now+def.StunMs)
	x := s.world.SlotCenter(target.Index)
	requestEffect(s.dispatcher, event.EffectStun, target.Lane, x)
	requestText(s.dispatcher, "SILENCED", target.Lane, x)
}

func (s *EnemySystem) summon(e *component.Enemy, def defs.EnemyDefinition, now float64) {
	x := math.Min(e.X+offspringOffset, config.LaneLength)
	if child := s.waves.NewEnemy(def.SummonType, e.Lane, x, now); child != nil {
		s.spawns = append(s.spawns, child)
		requestEffect(s.dispatcher, event.EffectSummon, e.Lane, x)
	}
}

func (s *EnemySystem) healNearby(e *component.Enemy, def defs.EnemyDefinition, now float64) {
	if now-e.LastHealTime < def.HealIntervalMs {
		return
	}
	e.LastHealTime = now
	for _, o := range s.world.Enemies {
		if o == e || !o.Alive() || o.HP >= o.MaxHP {
			continue
		}
		if utils.AbsInt(o.Lane-e.Lane) <= 1 && utils.Abs(o.X-e.X) <= def.HealRadius {
			s.heals[o.ID] += def.HealAmount
			requestEffect(s.dispatcher, event.EffectHeal, o.Lane, o.X)
		}
	}
}

func (s *EnemySystem) commitHeals() {
	if len(s.heals) == 0 {
		return
	}
	for _, e := range s.world.Enemies {
		if h, ok := s.heals[e.ID]; ok && e.Alive() {
			e.HP = math.Min(e.MaxHP, e.HP+h)
		}
	}
	clear(s.heals)
}

// die выдаёт награду и запускает эффекты смерти. Каждый враг проходит здесь
// ровно один раз: в конце прохода мёртвые удаляются.
func (s *EnemySystem) die(e *component.Enemy, now float64) {
	p := &s.world.Player
	p.Money += e.Bounty
	p.Score += s.settings.ScorePerKill
	p.Heat = math.Min(s.settings.MaxHeat, p.Heat+s.settings.HeatPerKill)

	s.dispatcher.Dispatch(event.Event{Type: event.CoinDropped, Data: event.CoinData{Value: e.Bounty, Lane: e.Lane, X: e.X}})
	s.dispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.EnemyData{ID: e.ID, Type: e.Type, Lane: e.Lane, X: e.X, Bounty: e.Bounty}})
	requestEffect(s.dispatcher, event.EffectDeath, e.Lane, e.X)
	requestSound(s.dispatcher, event.SoundEnemyDeath, "")

	def, ok := s.lib.Enemy(e.Type)
	if !ok {
		return
	}
	for i := 0; i < def.SplitCount && def.SplitInto != ""; i++ {
		x := math.Min(e.X+float64(i)*offspringOffset, config.LaneLength)
		if child := s.waves.NewEnemy(def.SplitInto, e.Lane, x, now); child != nil {
			s.spawns = append(s.spawns, child)
		}
	}
	if def.ExplodeDamage > 0 {
		s.explode(e, def.ExplodeDamage)
	}
}

// explode бьёт юнитов в квадрате 3×3 слотов вокруг точки смерти.
func (s *EnemySystem) explode(e *component.Enemy, damage float64) {
	idx := int(math.Floor(e.X / s.world.SlotWidth()))
	if idx >= s.world.SlotsPerLane {
		idx = s.world.SlotsPerLane - 1
	}
	for dl := -1; dl <= 1; dl++ {
		for di := -1; di <= 1; di++ {
			if u := s.world.Unit(e.Lane+dl, idx+di); u != nil && u.HP > 0 {
				s.unitHits.add(u.ID, damage)
			}
		}
	}
	requestEffect(s.dispatcher, event.EffectExplosion, e.Lane, e.X)
	requestSound(s.dispatcher, event.SoundExplosion, "")
}

func (s *EnemySystem) leak(e *component.Enemy) {
	s.world.Player.TakeDamage(e.PlayerDamage)
	s.dispatcher.Dispatch(event.Event{Type: event.EnemyLeaked, Data: event.EnemyData{ID: e.ID, Type: e.Type, Lane: e.Lane, X: e.X, Bounty: e.Bounty}})
	requestSound(s.dispatcher, event.SoundDamage, "")
}
