// internal/component/unit.go
package component

import "grill-defense/internal/types"

// Unit ингредиент, стоящий в слоте.
type Unit struct {
	ID                types.EntityID
	Type              string
	Level             int
	HP                float64
	MaxHP             float64
	LastAttackTime    float64
	LastAutoLevelTime float64
	Skills            map[string]bool // открытые навыки
	SkillPoints       int
	SpentSkillPoints  int
	StunnedUntil      float64
	AttackedAt        float64 // для подсветки атаки
}

// NewUnit creates a level 1 unit at full health.
func NewUnit(id types.EntityID, unitType string, maxHP, now float64) *Unit {
	return &Unit{
		ID:                id,
		Type:              unitType,
		Level:             1,
		HP:                maxHP,
		MaxHP:             maxHP,
		LastAttackTime:    now,
		LastAutoLevelTime: now,
		Skills:            make(map[string]bool),
		AttackedAt:        -1,
	}
}

// HasSkill reports whether the skill is unlocked.
func (u *Unit) HasSkill(id string) bool {
	return u.Skills[id]
}

// Stunned reports whether the unit is stunned at time now.
func (u *Unit) Stunned(now float64) bool {
	return u.StunnedUntil > now
}

// Heal restores hp without exceeding MaxHP.
func (u *Unit) Heal(amount float64) {
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
}

// Slot фиксированная позиция на дорожке, хранит не больше одного юнита.
type Slot struct {
	Lane  int
	Index int
	Unit  *Unit
}

// Empty reports whether no unit occupies the slot.
func (s *Slot) Empty() bool {
	return s.Unit == nil
}
