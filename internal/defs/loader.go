// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

//go:embed data/library.json
var defaultLibraryJSON []byte

// Library holds every tuning table, keyed by ID. It is never mutated after loading.
type Library struct {
	Units   map[string]UnitDefinition
	Enemies map[string]EnemyDefinition
	Skills  map[string]SkillDefinition
	Combos  []ComboDefinition
	Spawns  SpawnTable

	unitOrder []string
}

type libraryFile struct {
	Units   []UnitDefinition  `json:"units"`
	Enemies []EnemyDefinition `json:"enemies"`
	Skills  []SkillDefinition `json:"skills"`
	Combos  []ComboDefinition `json:"combos"`
	Spawns  SpawnTable        `json:"spawns"`
}

// DefaultLibrary parses the tables compiled into the binary.
func DefaultLibrary() (*Library, error) {
	return ParseLibrary(defaultLibraryJSON)
}

// LoadLibrary reads the tuning tables file and validates it.
func LoadLibrary(path string) (*Library, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}
	return ParseLibrary(file)
}

// ParseLibrary builds a Library from JSON and fails on any integrity problem.
func ParseLibrary(data []byte) (*Library, error) {
	var raw libraryFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal library: %w", err)
	}

	lib := &Library{
		Units:   make(map[string]UnitDefinition, len(raw.Units)),
		Enemies: make(map[string]EnemyDefinition, len(raw.Enemies)),
		Skills:  make(map[string]SkillDefinition, len(raw.Skills)),
		Combos:  raw.Combos,
		Spawns:  raw.Spawns,
	}
	for _, def := range raw.Units {
		if _, dup := lib.Units[def.ID]; dup {
			return nil, fmt.Errorf("duplicate unit definition %q", def.ID)
		}
		lib.Units[def.ID] = def
		lib.unitOrder = append(lib.unitOrder, def.ID)
	}
	for _, def := range raw.Enemies {
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy definition %q", def.ID)
		}
		lib.Enemies[def.ID] = def
	}
	for _, def := range raw.Skills {
		if _, dup := lib.Skills[def.ID]; dup {
			return nil, fmt.Errorf("duplicate skill definition %q", def.ID)
		}
		lib.Skills[def.ID] = def
	}

	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("invalid library: %w", err)
	}

	log.Printf("Loaded %d unit, %d enemy and %d skill definitions", len(lib.Units), len(lib.Enemies), len(lib.Skills))
	return lib, nil
}

// Validate checks that every referenced type has the stats the simulation reads.
func (l *Library) Validate() error {
	var errs []error
	for _, id := range l.unitOrder {
		errs = append(errs, l.validateUnit(l.Units[id])...)
	}
	for _, def := range l.Enemies {
		errs = append(errs, l.validateEnemy(def)...)
	}
	for _, c := range l.Combos {
		if c.Tag == "" || len(c.Families) == 0 {
			errs = append(errs, fmt.Errorf("combo %q: tag and families are required", c.Tag))
		}
	}
	if len(l.Spawns.Entries) == 0 {
		errs = append(errs, errors.New("spawn table is empty"))
	}
	for _, e := range l.Spawns.Entries {
		if _, ok := l.Enemies[e.EnemyID]; !ok {
			errs = append(errs, fmt.Errorf("spawn entry references unknown enemy %q", e.EnemyID))
		}
		if e.Weight <= 0 {
			errs = append(errs, fmt.Errorf("spawn entry %q: weight must be positive", e.EnemyID))
		}
	}
	if l.Spawns.BossID != "" {
		if _, ok := l.Enemies[l.Spawns.BossID]; !ok {
			errs = append(errs, fmt.Errorf("unknown boss enemy %q", l.Spawns.BossID))
		}
	}
	return errors.Join(errs...)
}

func (l *Library) validateUnit(def UnitDefinition) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("unit %q: "+format, append([]any{def.ID}, args...)...))
	}
	if def.Family == "" {
		fail("missing family")
	}
	if def.HP <= 0 {
		fail("hp must be positive")
	}
	switch def.Role {
	case RoleRanged, RoleMelee:
		if def.Damage <= 0 || def.Interval <= 0 || def.Range <= 0 {
			fail("attacking unit needs damage, attack interval and range")
		}
	case RoleHealer, RoleIncome, RoleCaptain:
		if def.Interval <= 0 {
			fail("support unit needs an attack interval")
		}
	case RolePassive:
	default:
		fail("unknown role %q", def.Role)
	}
	for _, sid := range def.Skills {
		if _, ok := l.Skills[sid]; !ok {
			fail("unknown skill %q", sid)
		}
	}
	return errs
}

func (l *Library) validateEnemy(def EnemyDefinition) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("enemy %q: "+format, append([]any{def.ID}, args...)...))
	}
	if def.HP <= 0 {
		fail("hp must be positive")
	}
	if def.Speed < 0 {
		fail("speed must not be negative")
	}
	if def.SplitInto != "" {
		if _, ok := l.Enemies[def.SplitInto]; !ok {
			fail("splits into unknown enemy %q", def.SplitInto)
		}
	}
	switch def.Behavior {
	case BehaviorMelee, BehaviorBoss:
	case BehaviorSilencer:
		if def.StunMs <= 0 {
			fail("silencer needs stun_ms")
		}
	case BehaviorSummoner:
		if _, ok := l.Enemies[def.SummonType]; !ok {
			fail("summons unknown enemy %q", def.SummonType)
		}
	case BehaviorHealer:
		if def.HealIntervalMs <= 0 || def.HealAmount <= 0 {
			fail("healer needs heal_amount and heal_interval_ms")
		}
	case BehaviorPhaser:
		if def.PhasePeriodMs <= 0 || def.PhaseDurationMs <= 0 || def.PhaseDurationMs >= def.PhasePeriodMs {
			fail("phaser needs 0 < phase_duration_ms < phase_period_ms")
		}
	default:
		fail("unknown behavior %q", def.Behavior)
	}
	return errs
}

// Unit returns a unit definition by ID.
func (l *Library) Unit(id string) (UnitDefinition, bool) {
	def, ok := l.Units[id]
	return def, ok
}

// Enemy returns an enemy definition by ID.
func (l *Library) Enemy(id string) (EnemyDefinition, bool) {
	def, ok := l.Enemies[id]
	return def, ok
}

// SkillsFor returns the skill list of a unit type in declaration order.
func (l *Library) SkillsFor(unitID string) []SkillDefinition {
	def, ok := l.Units[unitID]
	if !ok {
		return nil
	}
	out := make([]SkillDefinition, 0, len(def.Skills))
	for _, sid := range def.Skills {
		out = append(out, l.Skills[sid])
	}
	return out
}

// ShopUnits returns purchasable unit IDs in file order.
func (l *Library) ShopUnits() []string {
	out := make([]string, 0, len(l.unitOrder))
	for _, id := range l.unitOrder {
		if !l.Units[id].Unique {
			out = append(out, id)
		}
	}
	return out
}

// CaptainID returns the first unit with the captain role, if any.
func (l *Library) CaptainID() (string, bool) {
	for _, id := range l.unitOrder {
		if l.Units[id].Role == RoleCaptain {
			return id, true
		}
	}
	return "", false
}
