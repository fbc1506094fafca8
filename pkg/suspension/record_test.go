package suspension

import (
	"testing"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func checkInvariant(t *testing.T, record *models.Suspension) {
	t.Helper()
	for _, category := range models.TieredCategories() {
		state := record.Infraction(category)
		if (state.Tier == 0) != (state.Decays == nil) {
			t.Errorf("invariant broken for %s: tier=%d, decays=%v", category, state.Tier, state.Decays)
		}
	}
}

func TestApplyTierNeverExceedsCap(t *testing.T) {
	for category, cfg := range categoryTable {
		record := models.NewSuspension("100")
		lastTier := 0
		for i := 0; i < cfg.Cap+3; i++ {
			result, err := Apply(record, category, testNow)
			if err != nil {
				t.Fatalf("Apply(%s) returned error: %v", category, err)
			}
			if result.Tier < lastTier {
				t.Errorf("%s: tier decreased from %d to %d", category, lastTier, result.Tier)
			}
			if result.Tier > cfg.Cap {
				t.Errorf("%s: tier %d exceeds cap %d", category, result.Tier, cfg.Cap)
			}
			lastTier = result.Tier
			checkInvariant(t, record)
		}
		if lastTier != cfg.Cap {
			t.Errorf("%s: final tier = %d, want cap %d", category, lastTier, cfg.Cap)
		}
	}
}

func TestApplyMinorFirstTierIsWarning(t *testing.T) {
	record := models.NewSuspension("100")
	result, err := Apply(record, models.CategoryMinor, testNow)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if !result.Warning {
		t.Error("first minor infraction should be a warning")
	}
	if result.Tier != 1 {
		t.Errorf("Tier = %d, want 1", result.Tier)
	}
	if record.Suspended {
		t.Error("warning must not suspend the user")
	}
	if record.Ends != nil {
		t.Errorf("Ends = %v, want nil", record.Ends)
	}
	if record.Minor.Tier != 1 || record.Minor.Decays == nil {
		t.Errorf("minor state = %+v, want tier 1 with decay date", record.Minor)
	}
}

func TestApplySecondMinorSuspends(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.CategoryMinor, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	result, err := Apply(record, models.CategoryMinor, testNow)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if result.Warning {
		t.Error("second minor infraction is not a warning")
	}
	if !record.Suspended {
		t.Error("second minor infraction must suspend")
	}
	want := testNow.AddDate(0, 0, 1)
	if record.Ends == nil || !record.Ends.Equal(want) {
		t.Errorf("Ends = %v, want %v", record.Ends, want)
	}
}

func TestApplyMajorEscalationStacks(t *testing.T) {
	// Three majors in a row: 7, then 7+14, then 7+14+30 days from the first
	// call. Tier 3 stays under the major ban threshold of 4.
	record := models.NewSuspension("100")
	wantDays := []int{7, 21, 51}
	for i, want := range wantDays {
		result, err := Apply(record, models.CategoryMajor, testNow)
		if err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
		if result.Tier != i+1 {
			t.Errorf("call %d: Tier = %d, want %d", i+1, result.Tier, i+1)
		}
		wantEnd := testNow.AddDate(0, 0, want)
		if record.Ends == nil || !record.Ends.Equal(wantEnd) {
			t.Errorf("call %d: Ends = %v, want %v", i+1, record.Ends, wantEnd)
		}
		if result.BanDue {
			t.Errorf("call %d: BanDue = true, want false", i+1)
		}
	}

	// The fourth call reaches the cap and crosses the ban threshold.
	result, err := Apply(record, models.CategoryMajor, testNow)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result.Tier != 4 || !result.BanDue {
		t.Errorf("fourth call: tier=%d banDue=%v, want tier 4 and ban due", result.Tier, result.BanDue)
	}
}

func TestApplyAtCapAddsTableTailOnly(t *testing.T) {
	// quit has a duration entry at its cap, major does not.
	tests := []struct {
		category models.InfractionCategory
		extra    int
	}{
		{models.CategoryQuit, 30},
		{models.CategoryMajor, 0},
	}

	for _, tt := range tests {
		record := models.NewSuspension("100")
		cfg, _ := Config(tt.category)
		for i := 0; i < cfg.Cap; i++ {
			if _, err := Apply(record, tt.category, testNow); err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
		}
		before := *record.Ends
		result, err := Apply(record, tt.category, testNow)
		if err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
		if result.Tier != cfg.Cap {
			t.Errorf("%s: tier at cap = %d, want %d", tt.category, result.Tier, cfg.Cap)
		}
		want := before.AddDate(0, 0, tt.extra)
		if !record.Ends.Equal(want) {
			t.Errorf("%s: Ends = %v, want %v", tt.category, record.Ends, want)
		}
	}
}

func TestApplyRefreshesDecayDate(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.CategoryModerate, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	first := *record.Moderate.Decays

	later := testNow.AddDate(0, 0, 10)
	if _, err := Apply(record, models.CategoryModerate, later); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !record.Moderate.Decays.After(first) {
		t.Errorf("decay date not refreshed: %v -> %v", first, record.Moderate.Decays)
	}
}

func TestApplyUnknownCategory(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.InfractionCategory("severe"), testNow); err != ErrUnknownCategory {
		t.Errorf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestAddDaysStacks(t *testing.T) {
	// A user with 2 days remaining who gets 5 more ends 7 days from now.
	record := models.NewSuspension("100")
	remaining := testNow.AddDate(0, 0, 2)
	record.Suspended = true
	record.Ends = &remaining

	got := AddDays(record, 5, testNow)
	want := testNow.AddDate(0, 0, 7)
	if !got.Equal(want) {
		t.Errorf("AddDays = %v, want %v", got, want)
	}
	if !record.Suspended {
		t.Error("AddDays must force the suspended flag")
	}
}

func TestAddDaysFromExpiredEnd(t *testing.T) {
	// An end date in the past stacks from now, not from the stale date.
	record := models.NewSuspension("100")
	past := testNow.AddDate(0, 0, -10)
	record.Ends = &past

	got := AddDays(record, 3, testNow)
	want := testNow.AddDate(0, 0, 3)
	if !got.Equal(want) {
		t.Errorf("AddDays = %v, want %v", got, want)
	}
}

func TestRemoveDays(t *testing.T) {
	record := models.NewSuspension("100")
	ends := testNow.AddDate(0, 0, 10)
	record.Suspended = true
	record.Ends = &ends

	got, err := RemoveDays(record, 4)
	if err != nil {
		t.Fatalf("RemoveDays returned error: %v", err)
	}
	want := testNow.AddDate(0, 0, 6)
	if !got.Equal(want) {
		t.Errorf("RemoveDays = %v, want %v", got, want)
	}

	// No floor at now; the flag stays set and the expiry sweep corrects it.
	if _, err := RemoveDays(record, 30); err != nil {
		t.Fatalf("RemoveDays returned error: %v", err)
	}
	if !record.Suspended {
		t.Error("RemoveDays must not clear the suspended flag")
	}
}

func TestRemoveDaysWithoutEnd(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := RemoveDays(record, 2); err != ErrNoActiveEnd {
		t.Errorf("err = %v, want ErrNoActiveEnd", err)
	}
}

func TestRemoveTier(t *testing.T) {
	record := models.NewSuspension("100")
	for i := 0; i < 3; i++ {
		if _, err := Apply(record, models.CategoryQuit, testNow); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
	}

	result, err := RemoveTier(record, models.CategoryQuit, testNow)
	if err != nil {
		t.Fatalf("RemoveTier returned error: %v", err)
	}
	if !result.Removed || result.Tier != 2 {
		t.Errorf("result = %+v, want removed with tier 2", result)
	}
	if result.Decays == nil {
		t.Error("surviving tier must keep a decay date")
	}
	checkInvariant(t, record)

	// Down to zero clears the decay date.
	if _, err := RemoveTier(record, models.CategoryQuit, testNow); err != nil {
		t.Fatalf("RemoveTier returned error: %v", err)
	}
	result, err = RemoveTier(record, models.CategoryQuit, testNow)
	if err != nil {
		t.Fatalf("RemoveTier returned error: %v", err)
	}
	if !result.Removed || result.Tier != 0 || result.Decays != nil {
		t.Errorf("result = %+v, want removed with tier 0 and no decay", result)
	}
	checkInvariant(t, record)
}

func TestRemoveTierAlreadyZero(t *testing.T) {
	record := models.NewSuspension("100")
	result, err := RemoveTier(record, models.CategoryQuit, testNow)
	if err != nil {
		t.Fatalf("RemoveTier returned error: %v", err)
	}
	if result.Removed || result.Tier != 0 || result.Decays != nil {
		t.Errorf("result = %+v, want no-op at tier 0", result)
	}
}

func TestClear(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.CategoryExtreme, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	record.SuspendedRoles = []string{"role-a", "role-b"}

	Clear(record)

	if record.Suspended || record.Ends != nil || len(record.SuspendedRoles) != 0 {
		t.Errorf("Clear left record = %+v", record)
	}
	// Tiers survive a manual unsuspension.
	if record.Extreme.Tier != 1 {
		t.Errorf("Extreme.Tier = %d, want 1", record.Extreme.Tier)
	}
}

func TestDecayTick(t *testing.T) {
	record := models.NewSuspension("100")
	for i := 0; i < 3; i++ {
		if _, err := Apply(record, models.CategoryModerate, testNow); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
	}

	// 91 days later the decay date has passed: tier 3 -> 2 with a fresh date.
	later := testNow.AddDate(0, 0, 91)
	if !Decay(record, later) {
		t.Fatal("Decay = false, want a change")
	}
	if record.Moderate.Tier != 2 {
		t.Errorf("Moderate.Tier = %d, want 2", record.Moderate.Tier)
	}
	wantDecay := later.AddDate(0, 0, 90)
	if record.Moderate.Decays == nil || !record.Moderate.Decays.Equal(wantDecay) {
		t.Errorf("Moderate.Decays = %v, want %v", record.Moderate.Decays, wantDecay)
	}

	// Running again immediately is a no-op; the new date is in the future.
	if Decay(record, later) {
		t.Error("second immediate Decay should change nothing")
	}
	checkInvariant(t, record)
}

func TestDecayToZeroClearsDate(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.CategoryQuit, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if !Decay(record, testNow.AddDate(0, 0, 91)) {
		t.Fatal("Decay = false, want a change")
	}
	if record.Quit.Tier != 0 || record.Quit.Decays != nil {
		t.Errorf("quit state = %+v, want tier 0 with no decay date", record.Quit)
	}
}

func TestDecayWalksAllCategories(t *testing.T) {
	record := models.NewSuspension("100")
	if _, err := Apply(record, models.CategoryQuit, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, err := Apply(record, models.CategoryExtreme, testNow); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	// 91 days: quit decays, extreme (1460-day period) does not.
	if !Decay(record, testNow.AddDate(0, 0, 91)) {
		t.Fatal("Decay = false, want a change")
	}
	if record.Quit.Tier != 0 {
		t.Errorf("Quit.Tier = %d, want 0", record.Quit.Tier)
	}
	if record.Extreme.Tier != 1 {
		t.Errorf("Extreme.Tier = %d, want 1", record.Extreme.Tier)
	}
}

func TestExpired(t *testing.T) {
	record := models.NewSuspension("100")
	if Expired(record, testNow) {
		t.Error("fresh record must not be expired")
	}

	ends := testNow.AddDate(0, 0, -1)
	record.Suspended = true
	record.Ends = &ends
	if !Expired(record, testNow) {
		t.Error("past end date with suspended flag must be expired")
	}

	future := testNow.AddDate(0, 0, 1)
	record.Ends = &future
	if Expired(record, testNow) {
		t.Error("future end date must not be expired")
	}
}
