// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Behavior     EnemyBehavior `json:"behavior"`
	HP           float64       `json:"hp"`
	Speed        float64       `json:"speed"`
	Damage       float64       `json:"damage"`
	Bounty       int           `json:"bounty"`
	PlayerDamage int           `json:"player_damage"`
	Interval     float64       `json:"attack_interval_ms,omitempty"`

	// Разделение и взрыв при смерти
	SplitInto     string  `json:"split_into,omitempty"`
	SplitCount    int     `json:"split_count,omitempty"`
	ExplodeDamage float64 `json:"explode_damage,omitempty"`

	// Молчун
	StunMs    float64 `json:"stun_ms,omitempty"`
	Lookahead int     `json:"lookahead,omitempty"`

	// Призыватель
	SummonType   string  `json:"summon_type,omitempty"`
	SummonChance float64 `json:"summon_chance,omitempty"` // за кадр в 16 мс

	// Лекарь
	HealAmount     float64 `json:"heal_amount,omitempty"`
	HealIntervalMs float64 `json:"heal_interval_ms,omitempty"`
	HealRadius     float64 `json:"heal_radius,omitempty"`

	// Фазовый
	PhasePeriodMs   float64 `json:"phase_period_ms,omitempty"`
	PhaseDurationMs float64 `json:"phase_duration_ms,omitempty"`
}
