// internal/system/unit.go
package system

import (
	"fmt"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/types"
	"grill-defense/internal/utils"
	"log"
	"math"
	"sort"
)

const (
	furySpeedup    = 6.0 // +500% скорости атаки
	furyKind       = "PIZZA"
	pelletSpacing  = 1.5
	captainHPShare = 0.5
)

type cloneRequest struct {
	lane     int
	unitType string
}

// UnitSystem проход по юнитам: дружественный огонь, оглушение, регенерация,
// автоуровень с клонированием и атака.
type UnitSystem struct {
	world      *entity.World
	lib        *defs.Library
	settings   *config.Settings
	rng        utils.RandomSource
	dispatcher *event.Dispatcher

	hits     *enemyLedger
	heals    map[types.EntityID]float64
	clones   []cloneRequest
	levelUps []*component.Unit

	lastFriendlyFire float64
}

func NewUnitSystem(w *entity.World, lib *defs.Library, settings *config.Settings, rng utils.RandomSource, d *event.Dispatcher) *UnitSystem {
	return &UnitSystem{
		world:      w,
		lib:        lib,
		settings:   settings,
		rng:        rng,
		dispatcher: d,
		hits:       newEnemyLedger(),
		heals:      make(map[types.EntityID]float64),
	}
}

// Reset restarts the shared friendly-fire timer.
func (s *UnitSystem) Reset(now float64) {
	s.lastFriendlyFire = now
	s.clones = s.clones[:0]
	s.levelUps = s.levelUps[:0]
}

// Update runs the unit pass. All enemy damage, heals, level-ups from the captain
// and clones are committed after every slot has been processed.
// Units killed by friendly fire leave the board before any attack, and the lane
// bonuses are resolved again without them.
func (s *UnitSystem) Update(now, elapsed float64, lanes []LaneBonus) {
	if s.friendlyFire(now) {
		removeDeadUnits(s.world, s.dispatcher)
		lanes = ResolveLanes(s.world, s.lib, s.settings)
	}

	for l := 0; l < s.world.Lanes; l++ {
		for _, slot := range s.world.Slots[l] {
			u := slot.Unit
			if u == nil {
				continue
			}
			if u.HP <= 0 {
				s.destroy(slot)
				continue
			}
			if u.Stunned(now) {
				continue
			}
			def, ok := s.lib.Unit(u.Type)
			if !ok {
				log.Printf("UnitSystem: no definition for unit type %s", u.Type)
				continue
			}
			s.regen(u, elapsed)
			s.autoLevel(slot, u, def, now)
			s.attack(slot, u, def, now, lanes[l])
		}
	}

	s.hits.apply(s.world.Enemies, now)
	s.commitHeals()
	s.commitLevelUps()
	s.commitClones(now)
}

// friendlyFire раз в период каждый токсичный юнит бьёт соседей слева и справа.
// Урон копится и применяется разом, поэтому два соседних источника
// теряют ровно по одному значению. Возвращает true, если кто-то погиб.
func (s *UnitSystem) friendlyFire(now float64) bool {
	if now-s.lastFriendlyFire < s.settings.FriendlyFireIntervalMs {
		return false
	}
	s.lastFriendlyFire = now

	ledger := newUnitLedger()
	s.world.EachSlot(func(slot *component.Slot) {
		u := slot.Unit
		if u == nil || u.HP <= 0 {
			return
		}
		amount := s.lib.Units[u.Type].FriendlyFire
		if amount <= 0 {
			return
		}
		left, right := s.world.Neighbors(slot.Lane, slot.Index)
		for _, n := range []*component.Unit{left, right} {
			if n != nil {
				ledger.add(n.ID, amount)
			}
		}
		requestEffect(s.dispatcher, event.EffectExplosion, slot.Lane, s.world.SlotCenter(slot.Index))
	})
	return ledger.apply(s.world) > 0
}

func (s *UnitSystem) destroy(slot *component.Slot) {
	u := slot.Unit
	u.HP = 0
	slot.Unit = nil
	s.dispatcher.Dispatch(event.Event{Type: event.UnitDestroyed, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: slot.Lane, Slot: slot.Index, Level: u.Level}})
	requestEffect(s.dispatcher, event.EffectDeath, slot.Lane, s.world.SlotCenter(slot.Index))
}

func (s *UnitSystem) regen(u *component.Unit, elapsed float64) {
	for _, sk := range s.lib.SkillsFor(u.Type) {
		if sk.Effect != defs.EffectRegen || !u.HasSkill(sk.ID) || u.HP >= u.MaxHP {
			continue
		}
		if s.rng.Float64() < elapsed/1000 {
			u.Heal(sk.Value * u.MaxHP)
		}
	}
}

func (s *UnitSystem) autoLevel(slot *component.Slot, u *component.Unit, def defs.UnitDefinition, now float64) {
	if now-u.LastAutoLevelTime < s.settings.AutoLevelIntervalMs || u.Level >= s.settings.MaxLevel {
		return
	}
	u.Level++
	u.LastAutoLevelTime = now
	u.MaxHP = UnitMaxHP(s.lib, s.settings, u)
	u.HP = u.MaxHP
	if u.Level%s.settings.SkillPointInterval == 0 {
		u.SkillPoints++
	}
	if !def.Unique && len(s.world.EmptySlots(slot.Lane)) > 0 {
		s.clones = append(s.clones, cloneRequest{lane: slot.Lane, unitType: u.Type})
	}

	s.dispatcher.Dispatch(event.Event{Type: event.UnitLeveled, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: slot.Lane, Slot: slot.Index, Level: u.Level}})
	requestEffect(s.dispatcher, event.EffectAutoUpgrade, slot.Lane, s.world.SlotCenter(slot.Index))
	requestSound(s.dispatcher, event.SoundAutoUpgrade, u.Type)
}

func (s *UnitSystem) attack(slot *component.Slot, u *component.Unit, def defs.UnitDefinition, now float64, lane LaneBonus) {
	fury := s.furious(slot, u)
	if now-u.LastAttackTime < s.AttackInterval(slot, u, def, now, lane, fury) {
		return
	}

	switch {
	case fury:
		// пицца-ракеты летят на полную базовую дальность
		def.Range = math.Max(def.Range, 100)
		if !s.shoot(slot, u, def, lane, skillTotal(s.lib, u, defs.EffectFury), true) {
			return
		}
	case def.Role == defs.RoleRanged:
		if !s.shoot(slot, u, def, lane, def.Damage, false) {
			return
		}
	case def.Role == defs.RoleMelee:
		if !s.strike(slot, u, def, lane) {
			return
		}
	case def.Role == defs.RoleHealer:
		s.healAll(u, def)
	case def.Role == defs.RoleIncome:
		s.earn(slot, u, def)
	case def.Role == defs.RoleCaptain:
		s.season(slot, u)
	default:
		return
	}

	u.LastAttackTime = now
	u.AttackedAt = now
	requestSound(s.dispatcher, event.SoundAttack, u.Type)
}

// AttackInterval is base × combo × neighbour boosts × skills × overheat × lane × level factor.
func (s *UnitSystem) AttackInterval(slot *component.Slot, u *component.Unit, def defs.UnitDefinition, now float64, lane LaneBonus, fury bool) float64 {
	m := lane.SpeedMultiplier

	left, right := s.world.Neighbors(slot.Lane, slot.Index)
	for _, n := range []*component.Unit{left, right} {
		if n == nil || n.HP <= 0 {
			continue
		}
		if boost := s.lib.Units[n.Type].NeighborBoost; boost > 0 {
			m *= 1 - boost
		}
	}

	for _, sk := range s.lib.SkillsFor(u.Type) {
		if !u.HasSkill(sk.ID) {
			continue
		}
		switch sk.Effect {
		case defs.EffectAttackSpeed:
			m *= 1 - sk.Value
		case defs.EffectRage:
			if u.HP < u.MaxHP*0.5 {
				m /= 1 + sk.Value
			}
		}
	}
	if fury {
		m /= furySpeedup
	}
	if s.world.Player.Overheated(now) {
		m *= s.settings.OverheatFactor
	}
	m *= lane.LaneSpeed
	m *= math.Pow(s.settings.LevelSpeedFactor, float64(u.Level-1))
	return def.Interval * m
}

// Reach returns how far past its slot start the unit can see.
func (s *UnitSystem) Reach(u *component.Unit, def defs.UnitDefinition, lane LaneBonus) float64 {
	r := s.settings.BaseReach * def.Range / 100 * lane.RangeMultiplier
	if bonus := skillTotal(s.lib, u, defs.EffectRange); bonus > 0 {
		r *= 1 + bonus
	}
	return r
}

// Damage is base × level scaling × combo × skills × positional lane bonus.
func (s *UnitSystem) Damage(slot *component.Slot, u *component.Unit, base float64, lane LaneBonus) float64 {
	d := base * (1 + s.settings.LevelDamageFactor*float64(u.Level))
	d *= lane.DamageMultiplier

	if lane.Families[defs.FamilySupreme] {
		if bonus := skillTotal(s.lib, u, defs.EffectSynergy); bonus > 0 {
			d *= 1 + bonus
		}
	}
	left, right := s.world.Neighbors(slot.Lane, slot.Index)
	for _, n := range []*component.Unit{left, right} {
		if n == nil || n.HP <= 0 {
			continue
		}
		if aura := skillTotal(s.lib, n, defs.EffectNeighborDamage); aura > 0 {
			d *= 1 + aura
		}
	}

	d *= lane.LaneDamage
	return d
}

// targets возвращает врагов в зоне досягаемости, ближайших к юниту первыми.
func (s *UnitSystem) targets(slot *component.Slot, reach float64) []*component.Enemy {
	start := s.world.SlotStart(slot.Index)
	var out []*component.Enemy
	for _, e := range s.world.Enemies {
		if e.Lane == slot.Lane && e.Targetable() && e.X > start && e.X < start+reach {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

type attackRoll struct {
	multiplier float64
	shots      int
	shockwave  float64
}

// roll бросает шансы навыков в порядке их объявления.
func (s *UnitSystem) roll(u *component.Unit) attackRoll {
	r := attackRoll{multiplier: 1, shots: 1}
	for _, sk := range s.lib.SkillsFor(u.Type) {
		if !u.HasSkill(sk.ID) {
			continue
		}
		switch sk.Effect {
		case defs.EffectCrit:
			if s.rng.Float64() < sk.Chance {
				r.multiplier *= sk.Value
			}
		case defs.EffectDoubleShot:
			if s.rng.Float64() < sk.Chance {
				r.shots = 2
			}
		case defs.EffectShockwave:
			if s.rng.Float64() < sk.Chance {
				r.shockwave = sk.Value
			}
		}
	}
	return r
}

func (s *UnitSystem) applyRoll(slot *component.Slot, r attackRoll, damage float64) {
	x := s.world.SlotCenter(slot.Index)
	if r.multiplier > 1 {
		requestText(s.dispatcher, "CRIT!", slot.Lane, x)
	}
	if r.shockwave <= 0 {
		return
	}
	for _, e := range s.world.Enemies {
		if e.Lane == slot.Lane && e.Targetable() {
			s.hits.add(e.ID, damage*r.shockwave, s.settings.ShockwaveKnockback)
		}
	}
	requestEffect(s.dispatcher, event.EffectExplosion, slot.Lane, x)
}

func (s *UnitSystem) shoot(slot *component.Slot, u *component.Unit, def defs.UnitDefinition, lane LaneBonus, base float64, fury bool) bool {
	if len(s.targets(slot, s.Reach(u, def, lane))) == 0 {
		return false
	}
	r := s.roll(u)
	damage := s.Damage(slot, u, base, lane) * r.multiplier
	s.applyRoll(slot, r, damage)

	speed := def.ProjectileSpeed
	if speed <= 0 {
		speed = s.settings.ProjectileSpeed
	}
	hitbox := def.Hitbox
	if hitbox <= 0 {
		hitbox = s.settings.ProjectileHitbox
	}
	kind := def.ID
	splash := def.Splash || hasEffect(s.lib, u, defs.EffectSplash)
	if fury {
		kind = furyKind
		splash = true
	}
	pierce := def.Pierce + lane.ExtraPierce + int(skillTotal(s.lib, u, defs.EffectPierce))
	pellets := def.Pellets
	if pellets < 1 {
		pellets = 1
	}

	x := s.world.SlotCenter(slot.Index)
	for i := 0; i < pellets*r.shots; i++ {
		s.world.Projectiles = append(s.world.Projectiles, &component.Projectile{
			ID:        s.world.NewEntity(),
			Lane:      slot.Lane,
			X:         x - float64(i)*pelletSpacing,
			Damage:    damage,
			Speed:     speed,
			Pierce:    pierce,
			Splash:    splash,
			Knockback: def.Knockback,
			Hitbox:    hitbox,
			Kind:      kind,
		})
	}
	requestEffect(s.dispatcher, event.EffectAttack, slot.Lane, x)
	return true
}

func (s *UnitSystem) strike(slot *component.Slot, u *component.Unit, def defs.UnitDefinition, lane LaneBonus) bool {
	targets := s.targets(slot, s.Reach(u, def, lane))
	if len(targets) == 0 {
		return false
	}
	limit := def.MeleeTargets
	if limit < 1 {
		limit = 1
	}
	if len(targets) > limit {
		targets = targets[:limit]
	}

	r := s.roll(u)
	damage := s.Damage(slot, u, def.Damage, lane) * r.multiplier
	for _, e := range targets {
		s.hits.add(e.ID, damage*float64(r.shots), def.Knockback)
		requestEffect(s.dispatcher, event.EffectHit, e.Lane, e.X)
	}
	s.applyRoll(slot, r, damage)
	return true
}

func (s *UnitSystem) healAll(u *component.Unit, def defs.UnitDefinition) {
	amount := def.Heal * (1 + s.settings.LevelDamageFactor*float64(u.Level-1))
	s.world.EachSlot(func(slot *component.Slot) {
		t := slot.Unit
		if t == nil || t.HP <= 0 || t.HP >= t.MaxHP {
			return
		}
		s.heals[t.ID] += amount
		requestEffect(s.dispatcher, event.EffectHeal, slot.Lane, s.world.SlotCenter(slot.Index))
	})
}

func (s *UnitSystem) earn(slot *component.Slot, u *component.Unit, def defs.UnitDefinition) {
	s.world.Player.Money += def.Income
	x := s.world.SlotCenter(slot.Index)
	requestText(s.dispatcher, fmt.Sprintf("+$%d", def.Income), slot.Lane, x)
	requestSound(s.dispatcher, event.SoundCoin, u.Type)
}

// season: капитан выбирает до N случайных целей среди других юнитов и врагов.
// Союзники получают уровень, враги теряют половину здоровья.
func (s *UnitSystem) season(slot *component.Slot, captain *component.Unit) {
	type target struct {
		unit  *component.Unit
		enemy *component.Enemy
	}
	var pool []target
	s.world.EachSlot(func(other *component.Slot) {
		if other.Unit != nil && other.Unit != captain && other.Unit.HP > 0 {
			pool = append(pool, target{unit: other.Unit})
		}
	})
	for _, e := range s.world.Enemies {
		if e.Targetable() {
			pool = append(pool, target{enemy: e})
		}
	}
	utils.Shuffle(s.rng, len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := s.settings.CaptainTargets
	if n > len(pool) {
		n = len(pool)
	}
	for _, t := range pool[:n] {
		if t.unit != nil {
			s.levelUps = append(s.levelUps, t.unit)
			continue
		}
		s.hits.add(t.enemy.ID, t.enemy.HP*captainHPShare, 0)
		requestText(s.dispatcher, "-50%", t.enemy.Lane, t.enemy.X)
	}
	requestSound(s.dispatcher, event.SoundSkill, captain.Type)
	requestEffect(s.dispatcher, event.EffectAttack, slot.Lane, s.world.SlotCenter(slot.Index))
}

// furious: скрытый навык дохода превращает юнита в стрелка,
// если слева стоит говядина, а справа колбаса.
func (s *UnitSystem) furious(slot *component.Slot, u *component.Unit) bool {
	if !hasEffect(s.lib, u, defs.EffectFury) {
		return false
	}
	left, right := s.world.Neighbors(slot.Lane, slot.Index)
	if left == nil || right == nil || left.HP <= 0 || right.HP <= 0 {
		return false
	}
	return s.lib.Units[left.Type].Family == defs.FamilyBeef && s.lib.Units[right.Type].Family == defs.FamilySausage
}

func (s *UnitSystem) commitHeals() {
	if len(s.heals) == 0 {
		return
	}
	s.world.EachSlot(func(slot *component.Slot) {
		if slot.Unit == nil {
			return
		}
		if h, ok := s.heals[slot.Unit.ID]; ok && slot.Unit.HP > 0 {
			slot.Unit.Heal(h)
		}
	})
	clear(s.heals)
}

func (s *UnitSystem) commitLevelUps() {
	for _, u := range s.levelUps {
		if u.HP <= 0 {
			continue
		}
		if u.Level < s.settings.MaxLevel {
			u.Level++
			if u.Level%s.settings.SkillPointInterval == 0 {
				u.SkillPoints++
			}
		}
		u.MaxHP = UnitMaxHP(s.lib, s.settings, u)
		u.HP = u.MaxHP
		if slot := s.slotOf(u); slot != nil {
			requestEffect(s.dispatcher, event.EffectLevelUp, slot.Lane, s.world.SlotCenter(slot.Index))
		}
	}
	s.levelUps = s.levelUps[:0]
}

func (s *UnitSystem) commitClones(now float64) {
	for _, req := range s.clones {
		empty := s.world.EmptySlots(req.lane)
		if len(empty) == 0 {
			continue
		}
		target := empty[s.rng.Intn(len(empty))]
		def := s.lib.Units[req.unitType]
		clone := component.NewUnit(s.world.NewEntity(), req.unitType, def.HP, now)
		target.Unit = clone
		s.dispatcher.Dispatch(event.Event{Type: event.UnitPlaced, Data: event.UnitData{ID: clone.ID, Type: clone.Type, Lane: target.Lane, Slot: target.Index, Level: 1}})
		requestEffect(s.dispatcher, event.EffectLevelUp, target.Lane, s.world.SlotCenter(target.Index))
	}
	s.clones = s.clones[:0]
}

func (s *UnitSystem) slotOf(u *component.Unit) *component.Slot {
	var found *component.Slot
	s.world.EachSlot(func(slot *component.Slot) {
		if slot.Unit == u {
			found = slot
		}
	})
	return found
}
