// internal/system/projectile.go
package system

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/utils"
	"sort"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	world      *entity.World
	settings   *config.Settings
	dispatcher *event.Dispatcher
	hits       *enemyLedger
}

func NewProjectileSystem(w *entity.World, settings *config.Settings, d *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{
		world:      w,
		settings:   settings,
		dispatcher: d,
		hits:       newEnemyLedger(),
	}
}

// Update двигает снаряды и проверяет попадания по всему пройденному отрезку,
// чтобы быстрый снаряд не проскочил врага между кадрами.
func (s *ProjectileSystem) Update(now, elapsed float64) {
	ratio := elapsed / config.FrameMs

	for _, p := range s.world.Projectiles {
		if p.Spent {
			continue
		}
		prev := p.X
		p.X += p.Speed * ratio
		lo, hi := prev-p.Hitbox, p.X+p.Hitbox

		var candidates []*component.Enemy
		for _, e := range s.world.Enemies {
			if e.Lane != p.Lane || !e.Targetable() || p.HasHit(e.ID) {
				continue
			}
			if e.X >= lo && e.X <= hi {
				candidates = append(candidates, e)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].X < candidates[j].X })

		for _, e := range candidates {
			s.hits.add(e.ID, p.Damage, p.Knockback)
			p.MarkHit(e.ID)
			requestEffect(s.dispatcher, event.EffectHit, e.Lane, e.X)
			if p.Splash {
				s.splash(p, e)
			}
			if p.Pierce > 0 {
				p.Pierce--
				continue
			}
			p.Spent = true
			break
		}
	}

	kept := s.world.Projectiles[:0]
	for _, p := range s.world.Projectiles {
		if !p.Spent && p.X <= config.ProjectileExitX {
			kept = append(kept, p)
		}
	}
	clear(s.world.Projectiles[len(kept):])
	s.world.Projectiles = kept

	s.hits.apply(s.world.Enemies, now)
}

// splash задевает остальных врагов рядом с целью, включая соседние дорожки.
func (s *ProjectileSystem) splash(p *component.Projectile, target *component.Enemy) {
	for _, e := range s.world.Enemies {
		if e == target || !e.Targetable() {
			continue
		}
		if utils.AbsInt(e.Lane-target.Lane) <= 1 && utils.Abs(e.X-target.X) <= s.settings.SplashRadius {
			s.hits.add(e.ID, p.Damage*s.settings.SplashFactor, 0)
		}
	}
	requestEffect(s.dispatcher, event.EffectExplosion, target.Lane, target.X)
}
