// internal/component/enemy.go
package component

import (
	"grill-defense/internal/defs"
	"grill-defense/internal/types"
)

// Enemy представляет вражескую сущность на дорожке.
type Enemy struct {
	ID           types.EntityID
	Type         string
	Behavior     defs.EnemyBehavior
	Lane         int
	X            float64 // 0 у игрока, 100 у точки появления
	HP           float64
	MaxHP        float64
	Speed        float64
	Damage       float64
	PlayerDamage int
	Bounty       int

	AttackInterval float64
	LastAttackTime float64
	LastHealTime   float64
	LastHitTime    float64

	Attacking   bool
	Slowed      bool
	Phasing     bool
	PhaseOffset float64
}

// Alive reports whether the enemy still has hit points.
func (e *Enemy) Alive() bool {
	return e.HP > 0
}

// Targetable reports whether attacks can hit the enemy right now.
func (e *Enemy) Targetable() bool {
	return e.HP > 0 && !e.Phasing
}
