package system

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/utils"
	"math"
	"testing"
)

type recorder struct {
	got []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.got = append(r.got, e)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.got {
		if e.Type == t {
			n++
		}
	}
	return n
}

type rig struct {
	world    *entity.World
	lib      *defs.Library
	settings *config.Settings
	rng      *utils.ScriptedSource
	d        *event.Dispatcher
	rec      *recorder

	units       *UnitSystem
	projectiles *ProjectileSystem
	enemies     *EnemySystem
	waves       *WaveSystem
}

func newRig(t *testing.T, lanes, slots int) *rig {
	t.Helper()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary() error: %v", err)
	}
	s := config.DefaultSettings()
	s.Lanes = lanes
	s.SlotsPerLane = slots
	s.LanePattern = nil
	s.AutoSpawn = false
	s.CaptainEnabled = false

	w := entity.NewWorld(lanes, slots)
	w.Player = component.Player{HP: 20, MaxHP: 20, Money: 1000, Wave: 1}
	rng := &utils.ScriptedSource{DefaultFloat: 0.99}
	d := event.NewDispatcher()
	rec := &recorder{}
	d.SubscribeAll(rec, event.EnemyKilled, event.EnemyLeaked, event.UnitDestroyed, event.UnitPlaced, event.TextRequested, event.CoinDropped)

	r := &rig{world: w, lib: lib, settings: &s, rng: rng, d: d, rec: rec}
	r.waves = NewWaveSystem(w, lib, &s, rng, d)
	r.units = NewUnitSystem(w, lib, &s, rng, d)
	r.projectiles = NewProjectileSystem(w, &s, d)
	r.enemies = NewEnemySystem(w, lib, &s, rng, d, r.waves)
	return r
}

func (r *rig) place(lane, index int, unitType string) *component.Unit {
	def := r.lib.Units[unitType]
	u := component.NewUnit(r.world.NewEntity(), unitType, def.HP, 0)
	r.world.Slots[lane][index].Unit = u
	return u
}

func (r *rig) spawn(t *testing.T, enemyType string, lane int, x float64) *component.Enemy {
	t.Helper()
	e := r.waves.NewEnemy(enemyType, lane, x, 0)
	if e == nil {
		t.Fatalf("NewEnemy(%s) returned nil", enemyType)
	}
	r.world.Enemies = append(r.world.Enemies, e)
	return e
}

func (r *rig) lanes() []LaneBonus {
	return ResolveLanes(r.world, r.lib, r.settings)
}

func (r *rig) tick(now, elapsed float64) {
	r.world.Now = now
	r.enemies.UpdatePhases(now)
	r.units.Update(now, elapsed, r.lanes())
	r.projectiles.Update(now, elapsed)
	r.enemies.Update(now, elapsed, r.lanes())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnemyLedgerSumsDamageAndKeepsMaxKnockback(t *testing.T) {
	e := &component.Enemy{ID: 7, HP: 100, MaxHP: 100, X: 50}
	l := newEnemyLedger()
	l.add(e.ID, 30, 2)
	l.add(e.ID, 25, 5)
	l.add(e.ID, 10, 1)
	l.apply([]*component.Enemy{e}, 100)

	if !almostEqual(e.HP, 35) {
		t.Errorf("HP = %v, want 35", e.HP)
	}
	if !almostEqual(e.X, 55) {
		t.Errorf("X = %v, want 55 (max knockback only)", e.X)
	}
	if e.LastHitTime != 100 {
		t.Errorf("LastHitTime = %v, want 100", e.LastHitTime)
	}

	l.add(e.ID, 500, 80)
	l.apply([]*component.Enemy{e}, 200)
	if e.HP != 0 {
		t.Errorf("HP = %v, want clamp at 0", e.HP)
	}
	if e.X != config.LaneLength {
		t.Errorf("X = %v, want clamp at %v", e.X, config.LaneLength)
	}
}

func TestProjectileHitsEnemyOnce(t *testing.T) {
	r := newRig(t, 1, 10)
	e := r.spawn(t, "RAT", 0, 10)
	e.Speed = 0
	e.HP, e.MaxHP = 100, 100
	p := &component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 9, Damage: 20, Speed: 0.4, Pierce: 5, Hitbox: 3}
	r.world.Projectiles = append(r.world.Projectiles, p)

	for i := 1; i <= 10; i++ {
		r.projectiles.Update(float64(i*16), 16)
	}

	if !almostEqual(e.HP, 80) {
		t.Errorf("HP = %v, want 80", e.HP)
	}
	if p.HitCount() != 1 {
		t.Errorf("HitCount = %d, want 1", p.HitCount())
	}
	if p.Pierce != 4 {
		t.Errorf("Pierce = %d, want 4", p.Pierce)
	}
	if len(r.world.Projectiles) != 1 {
		t.Errorf("piercing projectile removed early")
	}
}

func TestProjectileStopsWithoutPierceAndLeavesBoard(t *testing.T) {
	r := newRig(t, 1, 10)
	near := r.spawn(t, "RAT", 0, 10)
	far := r.spawn(t, "RAT", 0, 11)
	near.Speed, far.Speed = 0, 0
	hpBefore := far.HP
	r.world.Projectiles = append(r.world.Projectiles,
		&component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 9, Damage: 5, Speed: 0.4, Hitbox: 3},
		&component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 109.9, Damage: 5, Speed: 0.4, Hitbox: 3},
	)

	r.projectiles.Update(16, 16)

	if far.HP != hpBefore {
		t.Errorf("far enemy hit, HP = %v", far.HP)
	}
	if near.HP >= hpBefore {
		t.Errorf("nearest enemy not hit first")
	}
	if len(r.world.Projectiles) != 0 {
		t.Errorf("%d projectiles left, want 0", len(r.world.Projectiles))
	}
}

func TestProjectileSkipsPhasingEnemy(t *testing.T) {
	r := newRig(t, 1, 10)
	e := r.spawn(t, "GHOST_RAT", 0, 10)
	e.Phasing = true
	hp := e.HP
	r.world.Projectiles = append(r.world.Projectiles, &component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 9, Damage: 5, Speed: 0.4, Hitbox: 3})

	r.projectiles.Update(16, 16)
	if e.HP != hp {
		t.Errorf("phasing enemy took damage")
	}
}

func TestSplashReachesAdjacentLane(t *testing.T) {
	r := newRig(t, 3, 10)
	target := r.spawn(t, "RAT", 0, 10)
	side := r.spawn(t, "RAT", 1, 14)
	far := r.spawn(t, "RAT", 0, 30)
	other := r.spawn(t, "RAT", 2, 10)
	for _, e := range []*component.Enemy{target, side, far, other} {
		e.HP, e.MaxHP, e.Speed = 100, 100, 0
	}
	r.world.Projectiles = append(r.world.Projectiles, &component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 9, Damage: 20, Speed: 0.4, Hitbox: 3, Splash: true})

	r.projectiles.Update(16, 16)

	want := map[*component.Enemy]float64{target: 80, side: 90, far: 100, other: 100}
	for e, hp := range want {
		if !almostEqual(e.HP, hp) {
			t.Errorf("enemy lane %d x %v: HP = %v, want %v", e.Lane, e.X, e.HP, hp)
		}
	}
}

func TestSplashSkipsPhasingEnemy(t *testing.T) {
	r := newRig(t, 2, 10)
	target := r.spawn(t, "RAT", 0, 10)
	ghost := r.spawn(t, "RAT", 1, 14)
	for _, e := range []*component.Enemy{target, ghost} {
		e.HP, e.MaxHP, e.Speed = 100, 100, 0
	}
	ghost.Phasing = true
	r.world.Projectiles = append(r.world.Projectiles, &component.Projectile{ID: r.world.NewEntity(), Lane: 0, X: 9, Damage: 20, Speed: 0.4, Hitbox: 3, Splash: true})

	r.projectiles.Update(16, 16)

	if !almostEqual(target.HP, 80) {
		t.Errorf("target HP = %v, want 80", target.HP)
	}
	if ghost.HP != 100 {
		t.Errorf("phasing enemy HP = %v, want 100", ghost.HP)
	}
}

func TestRangedUnitKillsEnemyInTwoShots(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "BEEF")
	e := r.spawn(t, "RAT", 0, 6)
	e.HP, e.MaxHP, e.Speed = 40, 40, 0

	for now := 16.0; now <= 1200; now += 16 {
		r.tick(now, 16)
	}
	if !almostEqual(e.HP, 2.5) {
		t.Fatalf("HP after first shot = %v, want 2.5", e.HP)
	}
	for now := 1216.0; now <= 2400; now += 16 {
		r.tick(now, 16)
	}
	if len(r.world.Enemies) != 0 {
		t.Fatalf("enemy still on board with HP %v", r.world.Enemies[0].HP)
	}
	if got := r.rec.count(event.EnemyKilled); got != 1 {
		t.Errorf("EnemyKilled dispatched %d times, want 1", got)
	}
	if r.world.Player.Money != 1010 {
		t.Errorf("Money = %d, want 1010", r.world.Player.Money)
	}
}

func TestUnitWithoutTargetKeepsCooldown(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 0, "BEEF")
	r.tick(5000, 16)
	if u.LastAttackTime != 0 {
		t.Errorf("LastAttackTime = %v, want 0", u.LastAttackTime)
	}
	r.spawn(t, "RAT", 0, 6).Speed = 0
	r.tick(5016, 16)
	if u.LastAttackTime != 5016 {
		t.Errorf("LastAttackTime = %v, want 5016", u.LastAttackTime)
	}
}

func TestFriendlyFireHitsEachNeighbourOnce(t *testing.T) {
	r := newRig(t, 1, 10)
	a := r.place(0, 3, "STINKY_TOFU")
	b := r.place(0, 4, "STINKY_TOFU")

	r.tick(500, 16)
	if a.HP != 200 || b.HP != 200 {
		t.Fatalf("damage before interval: %v %v", a.HP, b.HP)
	}
	r.tick(1000, 16)
	r.tick(1016, 16)
	if a.HP != 190 || b.HP != 190 {
		t.Errorf("HP = %v, %v, want 190 each", a.HP, b.HP)
	}
}

func TestFriendlyFireKillDropsComboBeforeAttacks(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "STINKY_TOFU")
	beef := r.place(0, 1, "BEEF")
	beef.HP = 5
	chili := r.place(0, 3, "CHILI")
	chili.LastAttackTime = 650
	r.spawn(t, "RAT", 0, r.world.SlotStart(3)+15).Speed = 0

	lanes := r.lanes()
	if !lanes[0].HasTag("SPICY_MEAT") {
		t.Fatalf("tags before the tick = %v, want SPICY_MEAT", lanes[0].Tags)
	}

	// 350 ms since the last shot: enough with SPICY_MEAT (340), short without it (400)
	r.units.Update(1000, 16, lanes)

	if r.world.Unit(0, 1) != nil {
		t.Fatalf("beef with %v hp still in its slot", beef.HP)
	}
	if got := r.rec.count(event.UnitDestroyed); got != 1 {
		t.Errorf("UnitDestroyed dispatched %d times, want 1", got)
	}
	if chili.LastAttackTime != 650 {
		t.Errorf("chili fired at %v with a combo from a dead unit", chili.LastAttackTime)
	}
	if n := len(r.world.Projectiles); n != 0 {
		t.Errorf("%d projectiles spawned, want 0", n)
	}
}

func TestAutoLevelGrantsSkillPointAndClone(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 0, "BEEF")
	u.Level = 4

	r.tick(30000, 16)

	if u.Level != 5 {
		t.Errorf("Level = %d, want 5", u.Level)
	}
	if u.SkillPoints != 1 {
		t.Errorf("SkillPoints = %d, want 1", u.SkillPoints)
	}
	if u.HP != u.MaxHP || !almostEqual(u.MaxHP, 500) {
		t.Errorf("HP/MaxHP = %v/%v, want 500/500", u.HP, u.MaxHP)
	}
	if got := 10 - len(r.world.EmptySlots(0)); got != 2 {
		t.Errorf("units in lane = %d, want 2", got)
	}
}

func TestAutoLevelInFullLaneDropsClone(t *testing.T) {
	r := newRig(t, 1, 4)
	for i := 0; i < 4; i++ {
		r.place(0, i, "GARLIC")
	}
	r.tick(30000, 16)
	if got := r.rec.count(event.UnitPlaced); got != 0 {
		t.Errorf("UnitPlaced dispatched %d times in a full lane", got)
	}
	for _, s := range r.world.Slots[0] {
		if s.Unit.Level != 2 {
			t.Errorf("slot %d level = %d, want 2", s.Index, s.Unit.Level)
		}
	}
}

func TestUniqueUnitIsNotCloned(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "SEASONING_CAPTAIN")
	r.tick(30000, 16)
	if got := r.rec.count(event.UnitPlaced); got != 0 {
		t.Errorf("captain cloned %d times", got)
	}
}

func TestAttackIntervalFactors(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 1, "BEEF")
	slot := r.world.Slots[0][1]
	def := r.lib.Units["BEEF"]
	lane := r.lanes()[0]

	if got := r.units.AttackInterval(slot, u, def, 0, lane, false); !almostEqual(got, 1200) {
		t.Errorf("base interval = %v, want 1200", got)
	}
	r.place(0, 0, "CHICKEN")
	lane = r.lanes()[0]
	if got := r.units.AttackInterval(slot, u, def, 0, lane, false); !almostEqual(got, 1200*0.7) {
		t.Errorf("with chicken neighbour = %v, want %v", got, 1200*0.7)
	}
	u.Level = 3
	if got := r.units.AttackInterval(slot, u, def, 0, lane, false); !almostEqual(got, 1200*0.7*0.81) {
		t.Errorf("at level 3 = %v, want %v", got, 1200*0.7*0.81)
	}
	r.world.Player.OverheatUntil = 100
	if got := r.units.AttackInterval(slot, u, def, 50, lane, false); !almostEqual(got, 1200*0.7*0.81*0.5) {
		t.Errorf("overheated = %v, want %v", got, 1200*0.7*0.81*0.5)
	}
}

func TestDamageScalesWithLevelAndCombo(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 0, "BEEF")
	slot := r.world.Slots[0][0]

	if got := r.units.Damage(slot, u, 25, r.lanes()[0]); !almostEqual(got, 37.5) {
		t.Errorf("level 1 damage = %v, want 37.5", got)
	}
	r.place(0, 5, "SHRIMP")
	lane := r.lanes()[0]
	if !lane.HasTag("SURF_TURF") {
		t.Fatalf("SURF_TURF not active, tags %v", lane.Tags)
	}
	if got := r.units.Damage(slot, u, 25, lane); !almostEqual(got, 37.5*1.2) {
		t.Errorf("with combo = %v, want %v", got, 37.5*1.2)
	}
}

func TestResolveLanesPatternAndSlow(t *testing.T) {
	r := newRig(t, 3, 10)
	r.settings.LanePattern = []string{config.LaneFast, config.LanePierce, config.LaneStrong}
	r.place(0, 0, "ONION")
	r.place(0, 1, "KING_ONION")
	dead := r.place(1, 0, "GOD_ONION")
	dead.HP = 0

	lanes := r.lanes()
	if lanes[0].Slow != 0.7 {
		t.Errorf("lane 0 slow = %v, want strongest 0.7", lanes[0].Slow)
	}
	if lanes[1].Slow != 0 {
		t.Errorf("dead unit still slows: %v", lanes[1].Slow)
	}
	if lanes[0].LaneSpeed != 0.8 || lanes[1].ExtraPierce != 1 || lanes[2].LaneDamage != 1.25 {
		t.Errorf("lane pattern not applied: %+v %+v %+v", lanes[0], lanes[1], lanes[2])
	}
}

func TestMeleeUnitHitsClosestTargets(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "SQUID")
	a := r.spawn(t, "RAT", 0, 2)
	b := r.spawn(t, "RAT", 0, 3)
	c := r.spawn(t, "RAT", 0, 4)
	for _, e := range []*component.Enemy{a, b, c} {
		e.HP, e.MaxHP, e.Speed = 500, 500, 0
	}

	r.units.Update(1200, 16, r.lanes())

	if a.HP != 425 || b.HP != 425 {
		t.Errorf("closest targets HP = %v, %v, want 425", a.HP, b.HP)
	}
	if c.HP != 500 {
		t.Errorf("third target hit: %v", c.HP)
	}
}

func TestHealerRestoresDamagedUnits(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "MARSHMALLOW")
	hurt := r.place(0, 5, "GARLIC")
	hurt.HP = 100

	r.units.Update(4000, 16, r.lanes())
	if hurt.HP != 130 {
		t.Errorf("HP = %v, want 130", hurt.HP)
	}
}

func TestIncomeUnitPays(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "PINEAPPLE")
	r.units.Update(5000, 16, r.lanes())
	if r.world.Player.Money != 1015 {
		t.Errorf("Money = %d, want 1015", r.world.Player.Money)
	}
}

func TestFuryPineappleFiresPizza(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "BEEF")
	p := r.place(0, 1, "PINEAPPLE")
	r.place(0, 2, "SAUSAGE")
	p.Skills["PINEAPPLE_FURY"] = true
	e := r.spawn(t, "RAT", 0, 30)
	e.Speed = 0

	r.units.Update(1000, 16, r.lanes())

	var pizza int
	for _, proj := range r.world.Projectiles {
		if proj.Kind == "PIZZA" {
			pizza++
		}
	}
	if pizza != 1 {
		t.Errorf("pizza projectiles = %d, want 1", pizza)
	}
	if r.world.Player.Money != 1000 {
		t.Errorf("furious pineapple still paid income")
	}
}

func TestCaptainLevelsUnitsAndHalvesEnemies(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "SEASONING_CAPTAIN")
	ally := r.place(0, 5, "GARLIC")
	e := r.spawn(t, "RAT", 0, 90)
	e.HP, e.MaxHP = 100, 100

	r.units.Update(800, 16, r.lanes())

	if ally.Level != 2 || ally.HP != ally.MaxHP {
		t.Errorf("ally level %d hp %v/%v, want level 2 at full hp", ally.Level, ally.HP, ally.MaxHP)
	}
	if e.HP != 50 {
		t.Errorf("enemy HP = %v, want 50", e.HP)
	}
}

func TestShockwaveHitsWholeLane(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 0, "KING_BEEF")
	u.Skills["KING_BEEF_SHOCKWAVE"] = true
	r.rng.Floats = []float64{0.0}
	near := r.spawn(t, "RAT", 0, 6)
	far := r.spawn(t, "RAT", 0, 95)
	near.HP, near.MaxHP, near.Speed = 1000, 1000, 0
	far.HP, far.MaxHP, far.Speed = 1000, 1000, 0

	r.units.Update(5000, 16, r.lanes())

	if far.HP >= 1000 {
		t.Errorf("far enemy not hit by shockwave")
	}
	if far.X != config.LaneLength {
		t.Errorf("far enemy X = %v, want knocked back to %v", far.X, config.LaneLength)
	}
}

func TestEnemyLeaksAtZeroOnly(t *testing.T) {
	r := newRig(t, 1, 10)
	leaking := r.spawn(t, "RAT", 0, 0)
	holding := r.spawn(t, "RAT", 0, 0.01)
	leaking.Speed, holding.Speed = 0, 0

	r.enemies.Update(16, 16, r.lanes())

	if r.world.Player.HP != 19 {
		t.Errorf("player HP = %d, want 19", r.world.Player.HP)
	}
	if len(r.world.Enemies) != 1 || r.world.Enemies[0] != holding {
		t.Errorf("expected only the enemy at 0.01 to remain")
	}
	if r.rec.count(event.EnemyKilled) != 0 {
		t.Errorf("leak paid a bounty")
	}
}

func TestBlockedEnemyAttacksAndReflectIsTaken(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 2, "GREEN_PEPPER")
	e := r.spawn(t, "RAT", 0, 25)
	e.HP, e.MaxHP = 100, 100

	r.enemies.Update(1000, 16, r.lanes())

	if e.X != 25 || !e.Attacking {
		t.Errorf("blocked enemy moved to %v", e.X)
	}
	if u.HP != 340 {
		t.Errorf("unit HP = %v, want 340", u.HP)
	}
	if e.HP != 85 {
		t.Errorf("enemy HP = %v, want 85 after reflect", e.HP)
	}
}

func TestPhasingEnemyIgnoresReflect(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 2, "GREEN_PEPPER")
	e := r.spawn(t, "RAT", 0, 25)
	e.HP, e.MaxHP = 100, 100
	e.Phasing = true

	r.enemies.Update(1000, 16, r.lanes())

	if u.HP != 340 {
		t.Errorf("unit HP = %v, want 340", u.HP)
	}
	if e.HP != 100 {
		t.Errorf("phasing enemy HP = %v, want 100", e.HP)
	}
}

func TestReflectKillPaysBountyOnce(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 2, "GREEN_PEPPER")
	e := r.spawn(t, "RAT", 0, 25)
	e.HP = 5
	money := r.world.Player.Money

	r.enemies.Update(1000, 16, r.lanes())

	if len(r.world.Enemies) != 0 {
		t.Fatalf("enemy killed by reflect still on board with HP %v", e.HP)
	}
	if got := r.rec.count(event.EnemyKilled); got != 1 {
		t.Errorf("EnemyKilled dispatched %d times, want 1", got)
	}
	if r.world.Player.Money != money+e.Bounty {
		t.Errorf("Money = %d, want %d", r.world.Player.Money, money+e.Bounty)
	}
}

func TestDamageReductionAppliesToHit(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 2, "GARLIC")
	u.Skills["GARLIC_HARDEN"] = true
	e := r.spawn(t, "RAT", 0, 25)
	e.Damage = 100

	r.enemies.Update(1000, 16, r.lanes())
	if u.HP != 375 {
		t.Errorf("HP = %v, want 375", u.HP)
	}
}

func TestBossChompsHazardousUnit(t *testing.T) {
	r := newRig(t, 1, 10)
	r.place(0, 0, "STINKY_TOFU")
	r.spawn(t, "BOSS_SUPER_RAT", 0, 5)

	r.enemies.Update(1000, 16, r.lanes())

	if !r.world.Slots[0][0].Empty() {
		t.Errorf("hazardous unit survived the boss")
	}
	if r.rec.count(event.UnitDestroyed) != 1 {
		t.Errorf("UnitDestroyed dispatched %d times, want 1", r.rec.count(event.UnitDestroyed))
	}
}

func TestSilencerStunsUnitAhead(t *testing.T) {
	r := newRig(t, 1, 10)
	u := r.place(0, 2, "BEEF")
	e := r.spawn(t, "SHAMAN_RAT", 0, 41)

	r.enemies.Update(3000, 16, r.lanes())

	if e.X != 41 {
		t.Errorf("silencer moved to %v", e.X)
	}
	if u.StunnedUntil != 5000 {
		t.Errorf("StunnedUntil = %v, want 5000", u.StunnedUntil)
	}
	r.units.Update(4000, 16, r.lanes())
	if u.LastAutoLevelTime != 0 || u.LastAttackTime != 0 {
		t.Errorf("stunned unit acted")
	}
}

func TestPhaserWindow(t *testing.T) {
	r := newRig(t, 1, 10)
	e := r.spawn(t, "GHOST_RAT", 0, 50)
	e.PhaseOffset = 0

	r.enemies.UpdatePhases(500)
	if !e.Phasing || e.Targetable() {
		t.Errorf("ghost should phase at 500")
	}
	r.enemies.UpdatePhases(1500)
	if e.Phasing {
		t.Errorf("ghost should be solid at 1500")
	}
}

func TestDeathSplitsAndExplodes(t *testing.T) {
	r := newRig(t, 3, 10)
	mama := r.spawn(t, "MAMA_RAT", 1, 50)
	bomb := r.spawn(t, "BOMB_RAT", 1, 15)
	mama.HP, bomb.HP = 0, 0
	hit := []*component.Unit{r.place(0, 0, "GARLIC"), r.place(1, 2, "GARLIC"), r.place(2, 1, "GARLIC")}
	safe := r.place(1, 3, "GARLIC")

	r.enemies.Update(16, 16, r.lanes())

	for _, u := range hit {
		if u.HP != 390 {
			t.Errorf("unit %d HP = %v, want 390", u.ID, u.HP)
		}
	}
	if safe.HP != 450 {
		t.Errorf("unit outside blast HP = %v", safe.HP)
	}
	babies := 0
	for _, e := range r.world.Enemies {
		if e.Type == "BABY_RAT" {
			babies++
		}
	}
	if babies != 2 {
		t.Errorf("babies = %d, want 2", babies)
	}
	if r.rec.count(event.EnemyKilled) != 2 {
		t.Errorf("EnemyKilled = %d, want 2", r.rec.count(event.EnemyKilled))
	}
	if r.world.Player.Money != 1070 || r.world.Player.Heat != 10 {
		t.Errorf("money %d heat %v, want 1070 and 10", r.world.Player.Money, r.world.Player.Heat)
	}
}

func TestHealerRatHealsNeighbours(t *testing.T) {
	r := newRig(t, 2, 10)
	healer := r.spawn(t, "HEALER_RAT", 0, 50)
	hurt := r.spawn(t, "RAT", 1, 55)
	far := r.spawn(t, "RAT", 0, 80)
	hurt.HP, far.HP = 10, 10
	healer.Speed, hurt.Speed, far.Speed = 0, 0, 0

	r.enemies.Update(2000, 16, r.lanes())

	if hurt.HP != 25 {
		t.Errorf("HP = %v, want 25", hurt.HP)
	}
	if far.HP != 10 {
		t.Errorf("enemy outside radius healed to %v", far.HP)
	}
}

func TestSummonerSpawnsWhileMoving(t *testing.T) {
	r := newRig(t, 1, 10)
	r.spawn(t, "SUMMONER_RAT", 0, 60)
	r.rng.Floats = []float64{0.0}

	r.enemies.Update(16, 16, r.lanes())

	if len(r.world.Enemies) != 2 {
		t.Fatalf("enemies = %d, want 2", len(r.world.Enemies))
	}
	child := r.world.Enemies[1]
	if child.Type != "BABY_RAT" || child.X <= 60 {
		t.Errorf("child %s at %v", child.Type, child.X)
	}
}

func TestHPNeverNegativeAfterPass(t *testing.T) {
	r := newRig(t, 2, 10)
	r.place(0, 1, "CHILI")
	r.place(1, 1, "STINKY_TOFU")
	r.place(1, 2, "STINKY_TOFU")
	for i := 0; i < 6; i++ {
		e := r.spawn(t, "BOMB_RAT", i%2, 12+float64(i))
		e.HP = 1
	}
	for now := 16.0; now <= 3200; now += 16 {
		r.tick(now, 16)
		r.world.EachSlot(func(s *component.Slot) {
			if s.Unit != nil && s.Unit.HP <= 0 {
				t.Fatalf("unit with HP %v left in slot %d:%d at %v", s.Unit.HP, s.Lane, s.Index, now)
			}
		})
		for _, e := range r.world.Enemies {
			if e.HP < 0 {
				t.Fatalf("enemy HP %v at %v", e.HP, now)
			}
		}
	}
}

func TestWaveRollsAndScaling(t *testing.T) {
	r := newRig(t, 1, 10)
	if got := r.waves.SpawnInterval(1); got != 4800 {
		t.Errorf("SpawnInterval(1) = %v, want 4800", got)
	}
	if got := r.waves.SpawnInterval(30); got != 1000 {
		t.Errorf("SpawnInterval(30) = %v, want 1000", got)
	}

	r.world.Player.Wave = 5
	r.rng.Floats = []float64{0.1}
	if got := r.waves.RollEnemyType(); got != "BOSS_SUPER_RAT" {
		t.Errorf("boss wave roll = %s", got)
	}
	r.spawn(t, "BOSS_SUPER_RAT", 0, 90)
	r.rng.Floats = []float64{0.1}
	if got := r.waves.RollEnemyType(); got == "BOSS_SUPER_RAT" {
		t.Errorf("second boss rolled while one is alive")
	}

	e := r.waves.NewEnemy("RAT", 0, 100, 0)
	if !almostEqual(e.HP, 40*1.5) {
		t.Errorf("wave 5 RAT HP = %v, want 60", e.HP)
	}
	if r.waves.NewEnemy("NOPE", 0, 100, 0) != nil {
		t.Errorf("unknown enemy type produced an enemy")
	}
}

func TestWaveSpawnsOnInterval(t *testing.T) {
	r := newRig(t, 2, 10)
	r.settings.AutoSpawn = true
	r.waves.Reset(0)

	r.waves.Update(4000)
	if len(r.world.Enemies) != 0 {
		t.Fatalf("spawned before interval")
	}
	r.waves.Update(4800)
	if len(r.world.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(r.world.Enemies))
	}
	if r.world.Enemies[0].X != r.settings.SpawnX {
		t.Errorf("spawn x = %v", r.world.Enemies[0].X)
	}
}

func TestPhaseEvaluate(t *testing.T) {
	r := newRig(t, 1, 2)
	phases := NewPhaseSystem(r.world, r.settings, r.d)

	if err := phases.Evaluate(100); err != nil {
		t.Fatalf("Evaluate() on an empty board: %v", err)
	}
	if phases.Current() != component.PhaseRunning {
		t.Fatalf("phase = %s, want %s", phases.Current(), component.PhaseRunning)
	}

	r.place(0, 0, "BEEF")
	r.place(0, 1, "BEEF")
	if err := phases.Evaluate(200); err != nil {
		t.Fatalf("Evaluate() with a full lane: %v", err)
	}
	if phases.Current() != component.PhaseVictoryPending {
		t.Fatalf("phase = %s, want %s", phases.Current(), component.PhaseVictoryPending)
	}
	if err := phases.Evaluate(200 + r.settings.VictoryDebounceMs); err != nil {
		t.Fatalf("Evaluate() after the hold: %v", err)
	}
	if phases.Current() != component.PhaseVictory {
		t.Errorf("phase = %s, want %s", phases.Current(), component.PhaseVictory)
	}
	if err := phases.Evaluate(5000); err != nil {
		t.Errorf("Evaluate() outside the playing phases = %v, want nil", err)
	}
}

func TestPhaseEvaluateDefeat(t *testing.T) {
	r := newRig(t, 1, 2)
	phases := NewPhaseSystem(r.world, r.settings, r.d)
	r.world.Player.HP = 0

	if err := phases.Evaluate(100); err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}
	if phases.Current() != component.PhaseDefeat {
		t.Errorf("phase = %s, want %s", phases.Current(), component.PhaseDefeat)
	}
}
