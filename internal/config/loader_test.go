package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg GemsConfig
	if err := yaml.Unmarshal(defaultGemsYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if want := DefaultGemsConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config differs from DefaultGemsConfig():\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadGemsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gems.yaml")
	body := `
board: {width: 6, height: 7}
gems:
  - {name: a, symbol: A, color: red, score: 1}
  - {name: b, symbol: B, color: blue, score: 2}
pacing: {gravity: 50ms}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGems(path)
	if err != nil {
		t.Fatalf("LoadGems() error = %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 7 {
		t.Errorf("board = %+v, want 6x7", cfg.Board)
	}
	if len(cfg.Gems) != 2 || cfg.Gems[1].Score != 2 {
		t.Errorf("gems = %+v", cfg.Gems)
	}
	if cfg.Pacing.Gravity != 50*time.Millisecond {
		t.Errorf("Pacing.Gravity = %v, want 50ms", cfg.Pacing.Gravity)
	}
	if got := LocateGems(path); got != path {
		t.Errorf("LocateGems() = %q, want %q", got, path)
	}
}

func TestLoadGemsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGems(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}
	if _, err := LoadGems(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadGemsFromXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path := filepath.Join(home, "xdg", "tui-gems", "gems.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("board: {width: 4, height: 4}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGems("")
	if err != nil {
		t.Fatalf("LoadGems() error = %v", err)
	}
	if cfg.Board.Width != 4 {
		t.Errorf("Board.Width = %d, want 4 from XDG file", cfg.Board.Width)
	}
	if got := LocateGems(""); got != path {
		t.Errorf("LocateGems() = %q, want %q", got, path)
	}
}

func TestSaveGemsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gems.yaml")
	want := DefaultGemsConfig()
	want.Gameplay.MoveLimit = 12

	written, err := SaveGems(want, path)
	if err != nil {
		t.Fatalf("SaveGems() error = %v", err)
	}
	if written != path {
		t.Errorf("SaveGems() path = %q, want %q", written, path)
	}

	got, err := LoadGems(path)
	if err != nil {
		t.Fatalf("LoadGems() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestApplyGemsPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantGems    int
		wantMoves   int
		wantRadius  int
		wantMinSpan int
	}{
		{DifficultyEasy, 4, 40, 2, 4},
		{DifficultyNormal, 5, 30, 1, 4},
		{DifficultyHard, 6, 20, 1, 5},
		{DifficultyFixed, 6, 30, 1, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGemsConfig()
			ApplyGemsPreset(&cfg, tt.preset)

			if len(cfg.Gems) != tt.wantGems {
				t.Errorf("gems = %d, want %d", len(cfg.Gems), tt.wantGems)
			}
			if cfg.Gameplay.MoveLimit != tt.wantMoves {
				t.Errorf("MoveLimit = %d, want %d", cfg.Gameplay.MoveLimit, tt.wantMoves)
			}
			if cfg.Special.BlastRadius != tt.wantRadius {
				t.Errorf("BlastRadius = %d, want %d", cfg.Special.BlastRadius, tt.wantRadius)
			}
			if cfg.Special.MinMatchForSpawn != tt.wantMinSpan {
				t.Errorf("MinMatchForSpawn = %d, want %d", cfg.Special.MinMatchForSpawn, tt.wantMinSpan)
			}
		})
	}
}

func TestApplyGemsPresetKeepsSmallRoster(t *testing.T) {
	cfg := DefaultGemsConfig()
	cfg.Gems = cfg.Gems[:3]
	ApplyGemsPreset(&cfg, DifficultyEasy)
	if len(cfg.Gems) != 3 {
		t.Errorf("gems = %d, want roster left at 3", len(cfg.Gems))
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"":       "",
		"insane": "",
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GemsConfig)
		wantErr bool
	}{
		{"defaults", func(*GemsConfig) {}, false},
		{"narrow board", func(c *GemsConfig) { c.Board.Width = 2 }, true},
		{"one gem", func(c *GemsConfig) { c.Gems = c.Gems[:1] }, true},
		{"blank symbol", func(c *GemsConfig) { c.Gems[0].Symbol = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGemsConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
