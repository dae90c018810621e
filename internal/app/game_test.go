package app

import (
	"errors"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/event"
	"grill-defense/internal/utils"
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

func testSettings(lanes, slots int) config.Settings {
	s := config.DefaultSettings()
	s.Lanes = lanes
	s.SlotsPerLane = slots
	s.PlayerMaxHP = 20
	s.AutoSpawn = false
	s.CaptainEnabled = false
	s.LanePattern = nil
	return s
}

func newTestGame(t *testing.T, s config.Settings) (*Game, *recorder) {
	t.Helper()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary() error: %v", err)
	}
	g, err := NewGame(s, lib, &utils.ScriptedSource{DefaultFloat: 0.99})
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	rec := &recorder{}
	g.EventDispatcher.SubscribeAll(rec, event.EnemyKilled, event.EnemyLeaked, event.PhaseChanged, event.UnitPlaced, event.UnitSold)
	return g, rec
}

func mustPlace(t *testing.T, g *Game, lane, index int, unitType string) *component.Unit {
	t.Helper()
	if err := g.PlaceUnit(lane, index, unitType); err != nil {
		t.Fatalf("PlaceUnit(%d, %d, %s) error: %v", lane, index, unitType, err)
	}
	return g.World().Unit(lane, index)
}

func run(g *Game, from, to float64) {
	for now := from; now <= to; now += 16 {
		g.Tick(now, 16)
	}
}

func TestSingleUnitKillsSingleEnemy(t *testing.T) {
	g, rec := newTestGame(t, testSettings(1, 10))
	mustPlace(t, g, 0, 0, "BEEF")
	e, err := g.SpawnEnemy("RAT", 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	e.HP, e.MaxHP, e.Speed = 40, 40, 0

	run(g, 16, 1200)
	if e.HP != 2.5 {
		t.Fatalf("HP after first shot = %v, want 2.5", e.HP)
	}
	run(g, 1216, 2400)

	if len(g.World().Enemies) != 0 {
		t.Fatalf("enemy survived")
	}
	if got := rec.count(event.EnemyKilled); got != 1 {
		t.Errorf("bounty paid %d times, want 1", got)
	}
	if g.World().Player.Money != 1000-50+10 {
		t.Errorf("Money = %d, want %d", g.World().Player.Money, 1000-50+10)
	}
	if g.World().Player.Score != 100 {
		t.Errorf("Score = %d, want 100", g.World().Player.Score)
	}
}

func TestFriendlyFireBetweenAdjacentHazards(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	a := mustPlace(t, g, 0, 3, "STINKY_TOFU")
	b := mustPlace(t, g, 0, 4, "STINKY_TOFU")

	g.Tick(1000, 16)

	if a.HP != 190 || b.HP != 190 {
		t.Errorf("HP = %v, %v, want 190 each", a.HP, b.HP)
	}
}

func TestLeakToZeroIsDefeat(t *testing.T) {
	g, rec := newTestGame(t, testSettings(1, 10))
	g.World().Player.HP = 5
	e, err := g.SpawnEnemy("BOMB_RAT", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	e.Speed = 0

	g.Tick(16, 16)

	if g.World().Player.HP != 0 {
		t.Errorf("player HP = %d, want 0", g.World().Player.HP)
	}
	if g.Phase() != component.PhaseDefeat {
		t.Errorf("phase = %s, want defeat", g.Phase())
	}
	if rec.count(event.EnemyLeaked) != 1 || rec.count(event.EnemyKilled) != 0 {
		t.Errorf("leaked %d killed %d", rec.count(event.EnemyLeaked), rec.count(event.EnemyKilled))
	}
}

func TestAutoLevelAtThirtySeconds(t *testing.T) {
	g, rec := newTestGame(t, testSettings(1, 10))
	u := mustPlace(t, g, 0, 0, "BEEF")
	u.Level = 4

	g.Tick(30000, 16)

	if u.Level != 5 || u.SkillPoints != 1 {
		t.Errorf("level %d points %d, want 5 and 1", u.Level, u.SkillPoints)
	}
	if got := rec.count(event.UnitPlaced); got != 2 {
		t.Errorf("UnitPlaced = %d, want 2 (purchase and clone)", got)
	}
}

func TestVictoryAfterDebounce(t *testing.T) {
	s := testSettings(5, 2)
	s.StartMoney = 100000
	g, _ := newTestGame(t, s)
	for l := 0; l < 5; l++ {
		for i := 0; i < 2; i++ {
			mustPlace(t, g, l, i, "GARLIC")
		}
	}

	g.Tick(16, 16)
	if g.Phase() != component.PhaseVictoryPending {
		t.Fatalf("phase = %s, want victory_pending", g.Phase())
	}
	g.Tick(1016, 16)
	if g.Phase() != component.PhaseVictoryPending {
		t.Fatalf("phase = %s before debounce elapsed", g.Phase())
	}
	g.Tick(2016, 16)
	if g.Phase() != component.PhaseVictory {
		t.Fatalf("phase = %s, want victory", g.Phase())
	}
}

func TestVictoryCancelledWhenLaneOpens(t *testing.T) {
	s := testSettings(5, 2)
	s.StartMoney = 100000
	g, _ := newTestGame(t, s)
	for l := 0; l < 5; l++ {
		for i := 0; i < 2; i++ {
			mustPlace(t, g, l, i, "GARLIC")
		}
	}
	g.Tick(16, 16)
	if err := g.SellUnit(2, 1); err != nil {
		t.Fatal(err)
	}
	g.Tick(32, 16)
	if g.Phase() != component.PhaseRunning {
		t.Errorf("phase = %s, want running", g.Phase())
	}
	mustPlace(t, g, 2, 1, "GARLIC")
	g.Tick(48, 16)
	g.Tick(2032, 16)
	if g.Phase() != component.PhaseVictoryPending {
		t.Errorf("debounce did not restart, phase = %s", g.Phase())
	}
}

func TestPausedTickIsNoop(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	u := mustPlace(t, g, 0, 0, "BEEF")
	e, _ := g.SpawnEnemy("RAT", 0, 50)
	if err := g.Pause(); err != nil {
		t.Fatal(err)
	}
	before := g.World().Player
	x := e.X

	g.Tick(5000, 16)
	g.Update(1)

	if g.World().Player != before || e.X != x || u.LastAttackTime != 0 || len(g.World().Projectiles) != 0 {
		t.Errorf("paused tick mutated state")
	}
	if err := g.PlaceUnit(0, 1, "BEEF"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("PlaceUnit while paused error = %v", err)
	}
	if err := g.Resume(); err != nil {
		t.Fatal(err)
	}
	if g.Phase() != component.PhaseRunning {
		t.Errorf("phase = %s after resume", g.Phase())
	}
}

func TestUpdateAdvancesClock(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	g.SpeedMultiplier = 2
	g.Update(0.5)
	if g.Now() != 1000 {
		t.Errorf("Now = %v, want 1000", g.Now())
	}
}

func TestPlaceUnitRejections(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	mustPlace(t, g, 0, 0, "BEEF")

	tests := []struct {
		name     string
		lane     int
		index    int
		unitType string
		want     error
	}{
		{"occupied", 0, 0, "BEEF", ErrSlotOccupied},
		{"off board", 1, 0, "BEEF", ErrNoSuchSlot},
		{"unknown", 0, 1, "TOAST", ErrUnknownType},
		{"unique", 0, 1, "SEASONING_CAPTAIN", ErrNotForSale},
		{"too expensive", 0, 1, "SUPREME_SQUID", ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money := g.World().Player.Money
			if err := g.PlaceUnit(tt.lane, tt.index, tt.unitType); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if g.World().Player.Money != money {
				t.Errorf("rejected command spent money")
			}
		})
	}
}

func TestUpgradeAndSell(t *testing.T) {
	g, rec := newTestGame(t, testSettings(1, 10))
	u := mustPlace(t, g, 0, 0, "BEEF")
	if got := g.UpgradeCost(u); got != 75 {
		t.Errorf("UpgradeCost = %d, want 75", got)
	}
	if err := g.UpgradeUnit(0, 0); err != nil {
		t.Fatal(err)
	}
	if u.Level != 2 || u.MaxHP != 200 || u.HP != 200 {
		t.Errorf("after upgrade level %d hp %v/%v", u.Level, u.HP, u.MaxHP)
	}
	if g.World().Player.Money != 1000-50-75 {
		t.Errorf("Money = %d", g.World().Player.Money)
	}

	if err := g.SellUnit(0, 0); err != nil {
		t.Fatal(err)
	}
	if g.World().Player.Money != 1000-50-75+25 {
		t.Errorf("Money after sell = %d", g.World().Player.Money)
	}
	if !g.World().Slots[0][0].Empty() || rec.count(event.UnitSold) != 1 {
		t.Errorf("unit not removed")
	}
	if err := g.SellUnit(0, 0); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("second sell error = %v", err)
	}
}

func TestCaptainIsPlacedAndUnsellable(t *testing.T) {
	s := testSettings(5, 10)
	s.CaptainEnabled = true
	g, _ := newTestGame(t, s)

	u := g.World().Unit(2, 0)
	if u == nil || u.Type != "SEASONING_CAPTAIN" {
		t.Fatalf("captain not in middle lane slot 0: %+v", u)
	}
	if err := g.SellUnit(2, 0); !errors.Is(err, ErrNotSellable) {
		t.Errorf("SellUnit(captain) error = %v", err)
	}
}

func TestSkillUnlockAndReset(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	u := mustPlace(t, g, 0, 0, "BEEF")

	if err := g.UnlockSkill(0, 0, "BEEF_TANK"); !errors.Is(err, ErrLevelTooLow) {
		t.Errorf("locked level error = %v", err)
	}
	u.Level = 5
	if err := g.UnlockSkill(0, 0, "BEEF_TANK"); !errors.Is(err, ErrNoSkillPoints) {
		t.Errorf("no points error = %v", err)
	}
	if err := g.UnlockSkill(0, 0, "CHILI_DOUBLE"); !errors.Is(err, ErrSkillUnavailable) {
		t.Errorf("foreign skill error = %v", err)
	}

	u.SkillPoints = 2
	u.MaxHP, u.HP = 500, 500
	if err := g.UnlockSkill(0, 0, "BEEF_TANK"); err != nil {
		t.Fatal(err)
	}
	if u.MaxHP != 700 || u.HP != 700 || u.SkillPoints != 1 {
		t.Errorf("after unlock hp %v/%v points %d", u.HP, u.MaxHP, u.SkillPoints)
	}
	if err := g.UnlockSkill(0, 0, "BEEF_TANK"); !errors.Is(err, ErrSkillUnlocked) {
		t.Errorf("double unlock error = %v", err)
	}

	if err := g.ResetSkills(0, 0); err != nil {
		t.Fatal(err)
	}
	if u.SkillPoints != 2 || u.HasSkill("BEEF_TANK") || u.MaxHP != 500 {
		t.Errorf("after reset points %d maxHP %v", u.SkillPoints, u.MaxHP)
	}
	if g.World().Player.Money != 1000-50-500 {
		t.Errorf("Money = %d", g.World().Player.Money)
	}
	if err := g.ResetSkills(0, 0); !errors.Is(err, ErrNothingToReset) {
		t.Errorf("second reset error = %v", err)
	}
}

func TestOverheat(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	if err := g.ActivateOverheat(); !errors.Is(err, ErrNotEnoughHeat) {
		t.Errorf("cold overheat error = %v", err)
	}
	g.World().Player.Heat = 100
	if err := g.ActivateOverheat(); err != nil {
		t.Fatal(err)
	}
	p := g.World().Player
	if p.Heat != 0 || !p.Overheated(g.Now()+1) {
		t.Errorf("overheat not active: %+v", p)
	}
}

func TestReviveAndNextWave(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	if err := g.Revive(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("revive while running error = %v", err)
	}

	g.World().Player.HP = 1
	e, _ := g.SpawnEnemy("RAT", 0, 0)
	e.Speed = 0
	other, _ := g.SpawnEnemy("RAT", 0, 30)
	other.Speed = 0
	g.Tick(16, 16)
	if g.Phase() != component.PhaseDefeat {
		t.Fatalf("phase = %s, want defeat", g.Phase())
	}

	if err := g.Revive(); err != nil {
		t.Fatal(err)
	}
	if g.Phase() != component.PhaseRunning || g.World().Player.HP != 20 {
		t.Errorf("revive phase %s hp %d", g.Phase(), g.World().Player.HP)
	}
	if other.X != 70 {
		t.Errorf("enemy not pushed back: %v", other.X)
	}

	if err := g.NextWave(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("next wave while running error = %v", err)
	}
}

func TestNextWaveAfterVictory(t *testing.T) {
	s := testSettings(1, 2)
	s.CaptainEnabled = true
	g, _ := newTestGame(t, s)
	mustPlace(t, g, 0, 1, "GARLIC")
	g.World().Player.Heat = 50

	g.Tick(16, 16)
	g.Tick(2016, 16)
	if g.Phase() != component.PhaseVictory {
		t.Fatalf("phase = %s, want victory", g.Phase())
	}
	money := g.World().Player.Money

	if err := g.NextWave(); err != nil {
		t.Fatal(err)
	}
	p := g.World().Player
	if p.Wave != 2 || p.Money != money+600 || p.Heat != 20 {
		t.Errorf("after next wave: %+v", p)
	}
	if g.World().Unit(0, 1) != nil {
		t.Errorf("board not cleared")
	}
	if u := g.World().Unit(0, 0); u == nil || u.Type != "SEASONING_CAPTAIN" || u.Level != 1 {
		t.Errorf("fresh captain missing: %+v", u)
	}
	if g.Phase() != component.PhaseRunning {
		t.Errorf("phase = %s", g.Phase())
	}
}

func TestEventRequestsRunCommands(t *testing.T) {
	g, _ := newTestGame(t, testSettings(1, 10))
	u := mustPlace(t, g, 0, 0, "BEEF")
	g.EventDispatcher.Dispatch(event.Event{Type: event.UpgradeRequested, Data: event.SlotData{Lane: 0, Slot: 0}})
	if u.Level != 2 {
		t.Errorf("Level = %d after UpgradeRequested", u.Level)
	}
	g.EventDispatcher.Dispatch(event.Event{Type: event.SellRequested, Data: event.SlotData{Lane: 0, Slot: 0}})
	if !g.World().Slots[0][0].Empty() {
		t.Errorf("unit not sold on SellRequested")
	}
}

func TestNewGameRejectsBadSettings(t *testing.T) {
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	s := testSettings(0, 10)
	if _, err := NewGame(s, lib, nil); err == nil {
		t.Error("expected error for zero lanes")
	}
}
