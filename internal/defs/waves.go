// internal/defs/waves.go
package defs

// SpawnEntry одна строка таблицы появления: тип врага, вес и минимальная волна.
type SpawnEntry struct {
	EnemyID string `json:"enemy_id"`
	Weight  int    `json:"weight"`
	MinWave int    `json:"min_wave"`
}

// SpawnTable определяет, каких врагов выпускает таймер.
type SpawnTable struct {
	Entries    []SpawnEntry `json:"entries"`
	BossID     string       `json:"boss_id"`
	BossEvery  int          `json:"boss_every"`
	BossChance float64      `json:"boss_chance"`
}

// Eligible returns the entries unlocked at the given wave.
func (t SpawnTable) Eligible(wave int) []SpawnEntry {
	out := make([]SpawnEntry, 0, len(t.Entries))
	for _, e := range t.Entries {
		if wave >= e.MinWave {
			out = append(out, e)
		}
	}
	return out
}

// ComboDefinition активируется, когда на дорожке есть все перечисленные семейства.
type ComboDefinition struct {
	Tag              string   `json:"tag"`
	Families         []string `json:"families"`
	SpeedMultiplier  float64  `json:"speed_multiplier,omitempty"` // множитель интервала
	DamageMultiplier float64  `json:"damage_multiplier,omitempty"`
	RangeMultiplier  float64  `json:"range_multiplier,omitempty"`
}

// SkillDefinition описывает открываемый навык.
type SkillDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	UnlockLevel int         `json:"unlock_level"`
	Cost        int         `json:"cost"`
	Hidden      bool        `json:"hidden,omitempty"`
	Effect      SkillEffect `json:"effect"`
	Chance      float64     `json:"chance,omitempty"`
	Value       float64     `json:"value,omitempty"`
}
