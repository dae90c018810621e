// internal/defs/types.go
package defs

// UnitRole определяет, как юнит использует свой таймер атаки.
type UnitRole string

const (
	RoleRanged  UnitRole = "RANGED"  // выпускает снаряды
	RoleMelee   UnitRole = "MELEE"   // бьёт напрямую в малом радиусе
	RolePassive UnitRole = "PASSIVE" // стены, ауры, отражатели
	RoleHealer  UnitRole = "HEALER"
	RoleIncome  UnitRole = "INCOME"
	RoleCaptain UnitRole = "CAPTAIN"
)

// Tier of a unit definition.
type Tier string

const (
	TierBase    Tier = "BASE"
	TierKing    Tier = "KING"
	TierGod     Tier = "GOD"
	TierSupreme Tier = "SUPREME"
	TierBonus   Tier = "BONUS"
	TierSpecial Tier = "SPECIAL"
)

// Семейства, на которые завязана логика, а не только комбо.
const (
	FamilyBeef      = "BEEF"
	FamilySausage   = "SAUSAGE"
	FamilyHazard    = "HAZARD"
	FamilySupreme   = "SUPREME"
	FamilySeasoning = "SEASONING"
)

// EnemyBehavior закрытый набор поведений врагов.
type EnemyBehavior string

const (
	BehaviorMelee    EnemyBehavior = "MELEE"
	BehaviorSilencer EnemyBehavior = "SILENCER"
	BehaviorSummoner EnemyBehavior = "SUMMONER"
	BehaviorHealer   EnemyBehavior = "HEALER"
	BehaviorPhaser   EnemyBehavior = "PHASER"
	BehaviorBoss     EnemyBehavior = "BOSS"
)

// SkillEffect describes what an unlocked skill changes.
type SkillEffect string

const (
	EffectCrit            SkillEffect = "CRIT"             // шанс умножить урон на Value
	EffectDoubleShot      SkillEffect = "DOUBLE_SHOT"      // шанс выстрелить дважды
	EffectShockwave       SkillEffect = "SHOCKWAVE"        // шанс ударить всю дорожку
	EffectPierce          SkillEffect = "PIERCE"           // +Value пробития
	EffectSplash          SkillEffect = "SPLASH"           // снаряды взрываются
	EffectHPBoost         SkillEffect = "HP_BOOST"         // maxHp × (1+Value)
	EffectRage            SkillEffect = "RAGE"             // hp < 50%: скорость × (1+Value)
	EffectAttackSpeed     SkillEffect = "ATTACK_SPEED"     // интервал × (1-Value)
	EffectRange           SkillEffect = "RANGE"            // дальность × (1+Value)
	EffectDamageReduction SkillEffect = "DAMAGE_REDUCTION" // входящий урон × (1-Value)
	EffectThorns          SkillEffect = "THORNS"           // отражает долю урона
	EffectRegen           SkillEffect = "REGEN"            // Value×maxHp в секунду
	EffectNeighborDamage  SkillEffect = "NEIGHBOR_DAMAGE"  // соседи бьют сильнее
	EffectSynergy         SkillEffect = "SYNERGY"          // урон выше рядом с SUPREME
	EffectDiscount        SkillEffect = "DISCOUNT"         // скидка на улучшение
	EffectFury            SkillEffect = "FURY"             // доход превращается в атаку
)
