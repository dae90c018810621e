package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lane pattern bonuses.
const (
	LaneFast   = "FAST"
	LanePierce = "PIERCE"
	LaneStrong = "STRONG"
)

// Settings содержит настраиваемые параметры сессии. Все времена в миллисекундах.
type Settings struct {
	Seed         int64 `yaml:"seed"`
	Lanes        int   `yaml:"lanes"`
	SlotsPerLane int   `yaml:"slots_per_lane"`
	PlayerMaxHP  int   `yaml:"player_max_hp"` // 0 = вычисляется из числа дорожек
	StartMoney   int   `yaml:"starting_money"`

	// Юниты
	MaxLevel               int     `yaml:"max_level"`
	AutoLevelIntervalMs    float64 `yaml:"auto_level_interval_ms"`
	SkillPointInterval     int     `yaml:"skill_point_interval"`
	LevelSpeedFactor       float64 `yaml:"level_speed_factor"`
	LevelDamageFactor      float64 `yaml:"level_damage_factor"`
	LevelHPFactor          float64 `yaml:"level_hp_factor"`
	UpgradeCostMultiplier  float64 `yaml:"upgrade_cost_multiplier"`
	SellRefund             float64 `yaml:"sell_refund"`
	SkillResetCost         int     `yaml:"skill_reset_cost"`
	FriendlyFireIntervalMs float64 `yaml:"friendly_fire_interval_ms"`
	BaseReach              float64 `yaml:"base_reach"`
	ProjectileSpeed        float64 `yaml:"projectile_speed"`
	ProjectileHitbox       float64 `yaml:"projectile_hitbox"`
	SplashRadius           float64 `yaml:"splash_radius"`
	SplashFactor           float64 `yaml:"splash_factor"`
	ShockwaveKnockback     float64 `yaml:"shockwave_knockback"`
	CaptainTargets         int     `yaml:"captain_targets"`
	CaptainEnabled         bool    `yaml:"captain_enabled"`

	// Дорожки
	LanePattern       []string `yaml:"lane_pattern"`
	FastLaneFactor    float64  `yaml:"fast_lane_factor"`
	StrongLaneFactor  float64  `yaml:"strong_lane_factor"`
	PierceLaneBonus   int      `yaml:"pierce_lane_bonus"`
	VictoryLanesCap   int      `yaml:"victory_lanes_cap"`
	VictoryDebounceMs float64  `yaml:"victory_debounce_ms"`

	// Враги и волны
	AutoSpawn           bool    `yaml:"auto_spawn"`
	SpawnBaseMs         float64 `yaml:"spawn_base_ms"`
	SpawnStepMs         float64 `yaml:"spawn_step_ms"`
	SpawnMinMs          float64 `yaml:"spawn_min_ms"`
	WaveHPStep          float64 `yaml:"wave_hp_step"`
	SpawnX              float64 `yaml:"spawn_x"`
	EnemyAttackInterval float64 `yaml:"enemy_attack_interval_ms"`

	// Экономика
	ScorePerKill      int     `yaml:"score_per_kill"`
	MaxHeat           float64 `yaml:"max_heat"`
	HeatPerKill       float64 `yaml:"heat_per_kill"`
	OverheatMs        float64 `yaml:"overheat_ms"`
	OverheatFactor    float64 `yaml:"overheat_factor"`
	ReviveCost        int     `yaml:"revive_cost"`
	RevivePushback    float64 `yaml:"revive_pushback"`
	WaveBonusBase     int     `yaml:"wave_bonus_base"`
	WaveBonusStep     int     `yaml:"wave_bonus_step"`
	NextWaveHeatDrain float64 `yaml:"next_wave_heat_drain"`
}

// DefaultSettings возвращает параметры по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		Lanes:        5,
		SlotsPerLane: 20,
		StartMoney:   1000,

		MaxLevel:               100,
		AutoLevelIntervalMs:    30000,
		SkillPointInterval:     5,
		LevelSpeedFactor:       0.9,
		LevelDamageFactor:      0.5,
		LevelHPFactor:          1.0,
		UpgradeCostMultiplier:  1.5,
		SellRefund:             0.5,
		SkillResetCost:         500,
		FriendlyFireIntervalMs: 1000,
		BaseReach:              25,
		ProjectileSpeed:        0.4,
		ProjectileHitbox:       3,
		SplashRadius:           8,
		SplashFactor:           0.5,
		ShockwaveKnockback:     10,
		CaptainTargets:         5,
		CaptainEnabled:         true,

		LanePattern:       []string{LaneFast, LanePierce, LaneStrong, LaneFast, LaneStrong},
		FastLaneFactor:    0.8,
		StrongLaneFactor:  1.25,
		PierceLaneBonus:   1,
		VictoryLanesCap:   5,
		VictoryDebounceMs: 2000,

		AutoSpawn:           true,
		SpawnBaseMs:         5000,
		SpawnStepMs:         200,
		SpawnMinMs:          1000,
		WaveHPStep:          0.1,
		SpawnX:              100,
		EnemyAttackInterval: 1000,

		ScorePerKill:      100,
		MaxHeat:           100,
		HeatPerKill:       5,
		OverheatMs:        8000,
		OverheatFactor:    0.5,
		ReviveCost:        500,
		RevivePushback:    40,
		WaveBonusBase:     500,
		WaveBonusStep:     100,
		NextWaveHeatDrain: 30,
	}
}

// LoadSettings читает YAML поверх значений по умолчанию.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects settings the simulation cannot run with.
func (s Settings) Validate() error {
	if s.Lanes <= 0 || s.SlotsPerLane <= 0 {
		return fmt.Errorf("invalid board size %dx%d", s.Lanes, s.SlotsPerLane)
	}
	if s.MaxLevel < 1 {
		return fmt.Errorf("max_level must be at least 1, got %d", s.MaxLevel)
	}
	if s.SkillPointInterval <= 0 {
		return fmt.Errorf("skill_point_interval must be positive, got %d", s.SkillPointInterval)
	}
	if s.FriendlyFireIntervalMs <= 0 {
		return fmt.Errorf("friendly_fire_interval_ms must be positive")
	}
	if s.LevelSpeedFactor <= 0 {
		return fmt.Errorf("level_speed_factor must be positive, got %v", s.LevelSpeedFactor)
	}
	for _, p := range s.LanePattern {
		switch p {
		case LaneFast, LanePierce, LaneStrong, "":
		default:
			return fmt.Errorf("unknown lane pattern %q", p)
		}
	}
	if len(s.LanePattern) > 0 && (s.FastLaneFactor <= 0 || s.StrongLaneFactor <= 0) {
		return fmt.Errorf("lane factors must be positive, got fast %v strong %v", s.FastLaneFactor, s.StrongLaneFactor)
	}
	return nil
}

// MaxPlayerHP возвращает здоровье игрока: явное значение или формула от числа дорожек.
func (s Settings) MaxPlayerHP() int {
	if s.PlayerMaxHP > 0 {
		return s.PlayerMaxHP
	}
	hp := int(10 + float64(s.Lanes-3)/7*40)
	if hp < 1 {
		hp = 1
	}
	return hp
}

// VictoryLanes number of fully occupied lanes needed to win.
func (s Settings) VictoryLanes() int {
	if s.VictoryLanesCap > 0 && s.VictoryLanesCap < s.Lanes {
		return s.VictoryLanesCap
	}
	return s.Lanes
}

// LaneBonus возвращает тип бонуса дорожки или пустую строку.
func (s Settings) LaneBonus(lane int) string {
	if len(s.LanePattern) == 0 {
		return ""
	}
	return s.LanePattern[lane%len(s.LanePattern)]
}
