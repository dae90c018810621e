// internal/system/utils.go
package system

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/types"
)

// UnitMaxHP максимальное здоровье юнита с учётом уровня и навыков HP_BOOST.
func UnitMaxHP(lib *defs.Library, s *config.Settings, u *component.Unit) float64 {
	def := lib.Units[u.Type]
	hp := def.HP * (1 + s.LevelHPFactor*float64(u.Level-1))
	for _, sk := range lib.SkillsFor(u.Type) {
		if sk.Effect == defs.EffectHPBoost && u.HasSkill(sk.ID) {
			hp *= 1 + sk.Value
		}
	}
	return hp
}

// skillTotal суммирует Value открытых навыков с данным эффектом.
func skillTotal(lib *defs.Library, u *component.Unit, effect defs.SkillEffect) float64 {
	total := 0.0
	for _, sk := range lib.SkillsFor(u.Type) {
		if sk.Effect == effect && u.HasSkill(sk.ID) {
			total += sk.Value
		}
	}
	return total
}

// hasEffect reports whether any unlocked skill of the unit carries the effect.
func hasEffect(lib *defs.Library, u *component.Unit, effect defs.SkillEffect) bool {
	for _, sk := range lib.SkillsFor(u.Type) {
		if sk.Effect == effect && u.HasSkill(sk.ID) {
			return true
		}
	}
	return false
}

// unitLedger копит урон по юнитам до конца прохода.
type unitLedger struct {
	damage map[types.EntityID]float64
}

func newUnitLedger() *unitLedger {
	return &unitLedger{damage: make(map[types.EntityID]float64)}
}

func (l *unitLedger) add(id types.EntityID, amount float64) {
	l.damage[id] += amount
}

func (l *unitLedger) empty() bool {
	return len(l.damage) == 0
}

// apply вычитает накопленный урон в порядке слотов и обнуляет журнал.
// Возвращает число юнитов, у которых hp дошло до нуля.
func (l *unitLedger) apply(w *entity.World) int {
	if l.empty() {
		return 0
	}
	killed := 0
	w.EachSlot(func(s *component.Slot) {
		if s.Unit == nil {
			return
		}
		if d, ok := l.damage[s.Unit.ID]; ok && s.Unit.HP > 0 {
			s.Unit.HP -= d
			if s.Unit.HP <= 0 {
				s.Unit.HP = 0
				killed++
			}
		}
	})
	clear(l.damage)
	return killed
}

// enemyLedger копит урон и отбрасывание по врагам до конца прохода.
type enemyLedger struct {
	damage    map[types.EntityID]float64
	knockback map[types.EntityID]float64
}

func newEnemyLedger() *enemyLedger {
	return &enemyLedger{
		damage:    make(map[types.EntityID]float64),
		knockback: make(map[types.EntityID]float64),
	}
}

// add суммирует урон, а отбрасывание берёт максимальное.
func (l *enemyLedger) add(id types.EntityID, damage, knockback float64) {
	l.damage[id] += damage
	if knockback > l.knockback[id] {
		l.knockback[id] = knockback
	}
}

func (l *enemyLedger) apply(enemies []*component.Enemy, now float64) {
	if len(l.damage) == 0 && len(l.knockback) == 0 {
		return
	}
	for _, e := range enemies {
		if d, ok := l.damage[e.ID]; ok {
			e.HP -= d
			if e.HP < 0 {
				e.HP = 0
			}
			e.LastHitTime = now
		}
		if kb := l.knockback[e.ID]; kb > 0 {
			e.X += kb
			if e.X > config.LaneLength {
				e.X = config.LaneLength
			}
		}
	}
	clear(l.damage)
	clear(l.knockback)
}

// removeDeadUnits освобождает слоты юнитов с hp <= 0.
func removeDeadUnits(w *entity.World, d *event.Dispatcher) {
	w.EachSlot(func(s *component.Slot) {
		if s.Unit == nil || s.Unit.HP > 0 {
			return
		}
		u := s.Unit
		s.Unit = nil
		d.Dispatch(event.Event{Type: event.UnitDestroyed, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: s.Lane, Slot: s.Index, Level: u.Level}})
		requestEffect(d, event.EffectDeath, s.Lane, w.SlotCenter(s.Index))
	})
}

func requestEffect(d *event.Dispatcher, kind string, lane int, x float64) {
	d.Dispatch(event.Event{Type: event.EffectRequested, Data: event.EffectData{Kind: kind, Lane: lane, X: x}})
}

func requestText(d *event.Dispatcher, text string, lane int, x float64) {
	d.Dispatch(event.Event{Type: event.TextRequested, Data: event.TextData{Text: text, Lane: lane, X: x}})
}

func requestSound(d *event.Dispatcher, kind event.SoundKind, unitType string) {
	d.Dispatch(event.Event{Type: event.SoundRequested, Data: event.SoundData{Kind: kind, UnitType: unitType}})
}
