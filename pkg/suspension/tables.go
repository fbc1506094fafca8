// Package suspension implements the punishment state machine: the per-category
// duration and decay tables, the infraction recorder transitions, the manual
// adjustments and the tier decay tick. Everything here is pure record
// manipulation; persistence and Discord side effects live elsewhere.
package suspension

import (
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// CategoryConfig is the immutable per-category configuration consulted by the
// recorder and the decay sweeper.
type CategoryConfig struct {
	// Cap is the maximum tier; recording past it never raises the tier.
	Cap int
	// Durations holds suspension days indexed by tier-1. A tier beyond the
	// table length adds 0 days.
	Durations []int
	// DecayDays is the no-new-infraction period after which one tier decays.
	DecayDays int
	// BanThreshold is the tier at which the caller must queue a ban-due entry.
	BanThreshold int
}

var categoryTable = map[models.InfractionCategory]CategoryConfig{
	models.CategoryQuit:     {Cap: 6, Durations: []int{1, 3, 7, 14, 30, 30}, DecayDays: 90, BanThreshold: 6},
	models.CategoryMinor:    {Cap: 7, Durations: []int{0, 1, 2, 4, 7, 14}, DecayDays: 90, BanThreshold: 7},
	models.CategoryModerate: {Cap: 6, Durations: []int{1, 4, 7, 14, 30}, DecayDays: 90, BanThreshold: 6},
	models.CategoryMajor:    {Cap: 4, Durations: []int{7, 14, 30}, DecayDays: 90, BanThreshold: 4},
	models.CategoryExtreme:  {Cap: 2, Durations: []int{30}, DecayDays: 1460, BanThreshold: 2},
}

// flatTable holds the fixed day counts for the flat-rate punishments; these
// never touch a tier.
var flatTable = map[models.FlatCategory]int{
	models.FlatOversub: 3,
	models.FlatComp:    7,
	models.FlatSmurf:   30,
}

// Config returns the configuration for a tiered category. The boolean is
// false for unknown categories.
func Config(category models.InfractionCategory) (CategoryConfig, bool) {
	cfg, ok := categoryTable[category]
	return cfg, ok
}

// FlatDays returns the day count for a flat-rate category.
func FlatDays(category models.FlatCategory) (int, bool) {
	days, ok := flatTable[category]
	return days, ok
}

// DurationForTier returns the suspension days the given tier adds. Tiers
// beyond the table add nothing.
func (c CategoryConfig) DurationForTier(tier int) int {
	if tier < 1 || tier > len(c.Durations) {
		return 0
	}
	return c.Durations[tier-1]
}

// DecayDate returns the fresh decay timestamp for the category, counted from
// now.
func (c CategoryConfig) DecayDate(now time.Time) time.Time {
	return now.AddDate(0, 0, c.DecayDays)
}
