// internal/event/types.go
package event

import "grill-defense/internal/types"

const (
	EffectRequested EventType = "EffectRequested" // визуальный эффект в точке
	TextRequested   EventType = "TextRequested"   // всплывающий текст
	SoundRequested  EventType = "SoundRequested"
	CoinDropped     EventType = "CoinDropped"
	EnemyKilled     EventType = "EnemyKilled"
	EnemyLeaked     EventType = "EnemyLeaked" // враг дошёл до игрока
	EnemySpawned    EventType = "EnemySpawned"
	UnitPlaced      EventType = "UnitPlaced"
	UnitDestroyed   EventType = "UnitDestroyed"
	UnitLeveled     EventType = "UnitLeveled"
	UnitSold        EventType = "UnitSold"
	PhaseChanged    EventType = "PhaseChanged"
	WaveStarted     EventType = "WaveStarted"

	// Запросы от UI, выполняются игрой как команды.
	UpgradeRequested     EventType = "UpgradeRequested"
	SellRequested        EventType = "SellRequested"
	SkillUnlockRequested EventType = "SkillUnlockRequested"
	SkillResetRequested  EventType = "SkillResetRequested"
)

// SoundKind ключ звука для внешнего синтезатора.
type SoundKind string

const (
	SoundAttack      SoundKind = "attack"
	SoundDamage      SoundKind = "damage"
	SoundEnemyDeath  SoundKind = "enemyDeath"
	SoundReflect     SoundKind = "reflect"
	SoundAutoUpgrade SoundKind = "autoUpgrade"
	SoundSkillUnlock SoundKind = "skillUnlock"
	SoundSkill       SoundKind = "skill"
	SoundExplosion   SoundKind = "explosion"
	SoundCoin        SoundKind = "coin"
	SoundVictory     SoundKind = "victory"
	SoundDefeat      SoundKind = "defeat"
)

// Effect kinds.
const (
	EffectHit         = "hit"
	EffectDeath       = "death"
	EffectExplosion   = "explosion"
	EffectAutoUpgrade = "autoUpgrade"
	EffectLevelUp     = "levelUp"
	EffectAttack      = "attack"
	EffectHeal        = "heal"
	EffectStun        = "stun"
	EffectSummon      = "summon"
)

// EffectData payload for EffectRequested.
type EffectData struct {
	Kind string
	Lane int
	X    float64
}

// TextData payload for TextRequested.
type TextData struct {
	Text string
	Lane int
	X    float64
}

// SoundData payload for SoundRequested. UnitType is set for attack sounds.
type SoundData struct {
	Kind     SoundKind
	UnitType string
}

// CoinData payload for CoinDropped.
type CoinData struct {
	Value int
	Lane  int
	X     float64
}

// EnemyData payload for enemy lifecycle events.
type EnemyData struct {
	ID     types.EntityID
	Type   string
	Lane   int
	X      float64
	Bounty int
}

// UnitData payload for unit lifecycle events.
type UnitData struct {
	ID    types.EntityID
	Type  string
	Lane  int
	Slot  int
	Level int
}

// PhaseData payload for PhaseChanged.
type PhaseData struct {
	From string
	To   string
}

// WaveData payload for WaveStarted.
type WaveData struct {
	Wave int
}

// SlotData payload for UI requests about the unit in a slot.
type SlotData struct {
	Lane    int
	Slot    int
	SkillID string
}
