package defs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLibraryIsValid(t *testing.T) {
	lib, err := DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary() error: %v", err)
	}
	beef, ok := lib.Unit("BEEF")
	if !ok {
		t.Fatal("BEEF missing from default library")
	}
	if beef.Damage != 25 || beef.Interval != 1200 {
		t.Errorf("BEEF stats = %v/%v, want 25/1200", beef.Damage, beef.Interval)
	}
	if _, ok := lib.CaptainID(); !ok {
		t.Error("default library has no captain")
	}
	for _, id := range lib.ShopUnits() {
		if lib.Units[id].Unique {
			t.Errorf("unique unit %s offered in shop", id)
		}
	}
}

func TestSkillsForKeepsDeclarationOrder(t *testing.T) {
	lib, err := DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	skills := lib.SkillsFor("BEEF")
	want := []string{"BEEF_CRIT", "BEEF_TANK", "BEEF_RAGE"}
	if len(skills) != len(want) {
		t.Fatalf("got %d skills, want %d", len(skills), len(want))
	}
	for i, s := range skills {
		if s.ID != want[i] {
			t.Errorf("skill %d = %s, want %s", i, s.ID, want[i])
		}
	}
	if got := lib.SkillsFor("NOPE"); got != nil {
		t.Errorf("unknown unit skills = %v, want nil", got)
	}
}

func TestParseLibraryFailsLoudly(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{
			name:    "unknown skill",
			json:    `{"units":[{"id":"A","family":"F","role":"PASSIVE","hp":10,"skills":["X"]}],"enemies":[{"id":"R","behavior":"MELEE","hp":1}],"spawns":{"entries":[{"enemy_id":"R","weight":1}]}}`,
			wantErr: `unknown skill "X"`,
		},
		{
			name:    "attacker without damage",
			json:    `{"units":[{"id":"A","family":"F","role":"RANGED","hp":10,"attack_interval_ms":100,"range":100}],"enemies":[{"id":"R","behavior":"MELEE","hp":1}],"spawns":{"entries":[{"enemy_id":"R","weight":1}]}}`,
			wantErr: "needs damage",
		},
		{
			name:    "spawn of missing enemy",
			json:    `{"units":[],"enemies":[{"id":"R","behavior":"MELEE","hp":1}],"spawns":{"entries":[{"enemy_id":"GHOST","weight":1}]}}`,
			wantErr: `unknown enemy "GHOST"`,
		},
		{
			name:    "phaser without window",
			json:    `{"units":[],"enemies":[{"id":"R","behavior":"PHASER","hp":1}],"spawns":{"entries":[{"enemy_id":"R","weight":1}]}}`,
			wantErr: "phase_duration_ms",
		},
		{
			name:    "duplicate unit",
			json:    `{"units":[{"id":"A","family":"F","role":"PASSIVE","hp":1},{"id":"A","family":"F","role":"PASSIVE","hp":1}]}`,
			wantErr: "duplicate unit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLibraryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, defaultLibraryJSON, 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("LoadLibrary() error: %v", err)
	}
	if len(lib.Units) == 0 {
		t.Error("no units loaded")
	}
	if _, err := LoadLibrary(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpawnTableEligible(t *testing.T) {
	table := SpawnTable{Entries: []SpawnEntry{
		{EnemyID: "A", Weight: 1, MinWave: 1},
		{EnemyID: "B", Weight: 1, MinWave: 3},
	}}
	if got := len(table.Eligible(1)); got != 1 {
		t.Errorf("wave 1 eligible = %d, want 1", got)
	}
	if got := len(table.Eligible(3)); got != 2 {
		t.Errorf("wave 3 eligible = %d, want 2", got)
	}
}
