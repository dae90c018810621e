// internal/defs/units.go
package defs

// UnitDefinition holds all the static data for a specific type of unit.
type UnitDefinition struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Family   string   `json:"family"`
	Tier     Tier     `json:"tier"`
	Role     UnitRole `json:"role"`
	Cost     int      `json:"cost"`
	Damage   float64  `json:"damage"`
	Interval float64  `json:"attack_interval_ms"`
	HP       float64  `json:"hp"`
	Range    float64  `json:"range"` // в процентах от базовой досягаемости

	ProjectileSpeed float64 `json:"projectile_speed,omitempty"`
	Pellets         int     `json:"pellets,omitempty"`
	Pierce          int     `json:"pierce,omitempty"`
	Splash          bool    `json:"splash,omitempty"`
	Knockback       float64 `json:"knockback,omitempty"`
	Hitbox          float64 `json:"hitbox,omitempty"`
	MeleeTargets    int     `json:"melee_targets,omitempty"`

	SlowAura      float64 `json:"slow_aura,omitempty"`      // доля замедления врагов на дорожке
	NeighborBoost float64 `json:"neighbor_boost,omitempty"` // сокращение интервала соседей
	Reflect       float64 `json:"reflect,omitempty"`        // фиксированный отражённый урон
	FriendlyFire  float64 `json:"friendly_fire,omitempty"`  // урон соседям раз в период
	Income        int     `json:"income,omitempty"`
	Heal          float64 `json:"heal,omitempty"`
	Hazardous     bool    `json:"hazardous,omitempty"`
	Unique        bool    `json:"unique,omitempty"` // не продаётся в магазине и не продаётся игроком

	Skills []string `json:"skills,omitempty"`
}

// Attacks reports whether the unit needs an enemy in reach to use its timer.
func (d UnitDefinition) Attacks() bool {
	return d.Role == RoleRanged || d.Role == RoleMelee
}
