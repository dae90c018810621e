// internal/component/projectile.go
package component

import "grill-defense/internal/types"

// Projectile представляет летящий снаряд. Летит от игрока к точке появления.
type Projectile struct {
	ID        types.EntityID
	Lane      int
	X         float64
	Damage    float64
	Speed     float64
	Pierce    int // сколько ещё врагов можно пробить после первого
	Splash    bool
	Knockback float64
	Hitbox    float64
	Kind      string // тип юнита для звука и отрисовки
	Spent     bool
	hit       map[types.EntityID]struct{}
}

// HasHit reports whether this projectile already damaged the enemy.
func (p *Projectile) HasHit(id types.EntityID) bool {
	_, ok := p.hit[id]
	return ok
}

// MarkHit records the enemy in the hit set. The set only grows.
func (p *Projectile) MarkHit(id types.EntityID) {
	if p.hit == nil {
		p.hit = make(map[types.EntityID]struct{})
	}
	p.hit[id] = struct{}{}
}

// HitCount returns the number of distinct enemies hit.
func (p *Projectile) HitCount() int {
	return len(p.hit)
}
