package suspension

import (
	"testing"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

func TestConfigCoversAllTieredCategories(t *testing.T) {
	for _, category := range models.TieredCategories() {
		cfg, ok := Config(category)
		if !ok {
			t.Fatalf("Config(%s) missing", category)
		}
		if cfg.Cap < 1 || cfg.DecayDays < 1 {
			t.Errorf("%s: invalid config %+v", category, cfg)
		}
		if cfg.BanThreshold > cfg.Cap {
			t.Errorf("%s: ban threshold %d beyond cap %d", category, cfg.BanThreshold, cfg.Cap)
		}
	}
	if _, ok := Config(models.InfractionCategory("nope")); ok {
		t.Error("Config should reject unknown categories")
	}
}

func TestDurationForTier(t *testing.T) {
	cfg, _ := Config(models.CategoryMinor)
	tests := []struct {
		tier int
		want int
	}{
		{0, 0},
		{1, 0}, // tier 1 minor is a warning
		{2, 1},
		{6, 14},
		{7, 0}, // beyond the table
	}
	for _, tt := range tests {
		if got := cfg.DurationForTier(tt.tier); got != tt.want {
			t.Errorf("DurationForTier(%d) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestFlatDays(t *testing.T) {
	tests := []struct {
		category models.FlatCategory
		want     int
	}{
		{models.FlatOversub, 3},
		{models.FlatComp, 7},
		{models.FlatSmurf, 30},
	}
	for _, tt := range tests {
		got, ok := FlatDays(tt.category)
		if !ok || got != tt.want {
			t.Errorf("FlatDays(%s) = %d (%v), want %d", tt.category, got, ok, tt.want)
		}
	}
}
