// internal/system/combo.go
package system

import (
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
)

// LaneBonus бонусы дорожки, выведенные из текущей занятости слотов.
// Пересчитывается каждый раз заново и нигде не хранится.
type LaneBonus struct {
	Tags     []string
	Families map[string]bool

	SpeedMultiplier  float64 // множитель интервала атаки от комбо
	DamageMultiplier float64
	RangeMultiplier  float64

	LaneSpeed   float64 // позиционный бонус FAST
	LaneDamage  float64 // позиционный бонус STRONG
	ExtraPierce int     // позиционный бонус PIERCE

	Slow float64 // сильнейшее замедление, не суммируется
}

func newLaneBonus() LaneBonus {
	return LaneBonus{
		Families:         make(map[string]bool),
		SpeedMultiplier:  1,
		DamageMultiplier: 1,
		RangeMultiplier:  1,
		LaneSpeed:        1,
		LaneDamage:       1,
	}
}

// HasTag reports whether the combo tag is active.
func (b LaneBonus) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ResolveLanes returns the bonuses of every lane from the living units on the board.
func ResolveLanes(w *entity.World, lib *defs.Library, s *config.Settings) []LaneBonus {
	out := make([]LaneBonus, w.Lanes)
	for l := 0; l < w.Lanes; l++ {
		b := newLaneBonus()
		for _, slot := range w.Slots[l] {
			u := slot.Unit
			if u == nil || u.HP <= 0 {
				continue
			}
			def, ok := lib.Units[u.Type]
			if !ok {
				continue
			}
			b.Families[def.Family] = true
			if def.SlowAura > b.Slow {
				b.Slow = def.SlowAura
			}
		}

		for _, combo := range lib.Combos {
			if !hasAll(b.Families, combo.Families) {
				continue
			}
			b.Tags = append(b.Tags, combo.Tag)
			if combo.SpeedMultiplier > 0 {
				b.SpeedMultiplier *= combo.SpeedMultiplier
			}
			if combo.DamageMultiplier > 0 {
				b.DamageMultiplier *= combo.DamageMultiplier
			}
			if combo.RangeMultiplier > 0 {
				b.RangeMultiplier *= combo.RangeMultiplier
			}
		}

		switch s.LaneBonus(l) {
		case config.LaneFast:
			b.LaneSpeed = s.FastLaneFactor
		case config.LaneStrong:
			b.LaneDamage = s.StrongLaneFactor
		case config.LanePierce:
			b.ExtraPierce = s.PierceLaneBonus
		}
		out[l] = b
	}
	return out
}

func hasAll(set map[string]bool, families []string) bool {
	for _, f := range families {
		if !set[f] {
			return false
		}
	}
	return true
}
