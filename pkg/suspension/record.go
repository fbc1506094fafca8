package suspension

import (
	"errors"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

var (
	ErrUnknownCategory = errors.New("categoría de infracción desconocida")
	// ErrNoActiveEnd se devuelve al quitar días de un registro sin fecha de fin.
	ErrNoActiveEnd = errors.New("el registro no tiene una fecha de fin activa")
)

// Result is what the infraction recorder hands back to the command layer,
// which decides from it whether to strip roles, which notice to render and
// whether to queue a ban-due entry.
type Result struct {
	Tier    int
	Ends    *time.Time
	Warning bool
	BanDue  bool
}

// RemoveTierResult reports the outcome of a manual tier removal.
type RemoveTierResult struct {
	Tier    int
	Decays  *time.Time
	Removed bool
}

// stackedEnd returns the base date new suspension days stack onto: the current
// end if still in the future, otherwise now. Suspensions extend, never reset.
func stackedEnd(record *models.Suspension, now time.Time) time.Time {
	if record.Ends != nil && record.Ends.After(now) {
		return *record.Ends
	}
	return now
}

// Apply advances the record one tier in the given category and recomputes the
// suspension end date. It mutates the record in place and returns the
// transition result; the caller persists.
//
// The minor tier-1 case is a warning: the record ends up unsuspended with no
// end date, but the tier and decay date advance as usual.
func Apply(record *models.Suspension, category models.InfractionCategory, now time.Time) (Result, error) {
	cfg, ok := Config(category)
	if !ok {
		return Result{}, ErrUnknownCategory
	}

	state := record.Infraction(category)
	newTier := state.Tier + 1
	if newTier > cfg.Cap {
		newTier = cfg.Cap
	}

	decays := cfg.DecayDate(now)
	state.Tier = newTier
	state.Decays = &decays

	if category == models.CategoryMinor && newTier == 1 {
		record.Suspended = false
		record.Ends = nil
		return Result{Tier: newTier, Ends: nil, Warning: true}, nil
	}

	ends := stackedEnd(record, now).AddDate(0, 0, cfg.DurationForTier(newTier))
	record.Suspended = true
	record.Ends = &ends

	return Result{
		Tier:   newTier,
		Ends:   &ends,
		BanDue: newTier >= cfg.BanThreshold,
	}, nil
}

// AddDays extends the suspension by n days on top of the remaining time and
// forces the suspended flag. Used by the flat-rate punishments and the manual
// day adjustment.
func AddDays(record *models.Suspension, n int, now time.Time) time.Time {
	ends := stackedEnd(record, now).AddDate(0, 0, n)
	record.Suspended = true
	record.Ends = &ends
	return ends
}

// RemoveDays subtracts n days from the end date with no floor at now; an end
// date in the past is corrected by the next expiry sweep, not here.
func RemoveDays(record *models.Suspension, n int) (time.Time, error) {
	if record.Ends == nil {
		return time.Time{}, ErrNoActiveEnd
	}
	ends := record.Ends.AddDate(0, 0, -n)
	record.Ends = &ends
	return ends, nil
}

// RemoveTier lowers the category one tier, floored at zero. A surviving tier
// gets a fresh decay date; tier zero clears it. Removed is false when there
// was nothing to remove.
func RemoveTier(record *models.Suspension, category models.InfractionCategory, now time.Time) (RemoveTierResult, error) {
	cfg, ok := Config(category)
	if !ok {
		return RemoveTierResult{}, ErrUnknownCategory
	}

	state := record.Infraction(category)
	if state.Tier == 0 {
		return RemoveTierResult{Tier: 0, Decays: state.Decays, Removed: false}, nil
	}

	state.Tier--
	if state.Tier == 0 {
		state.Decays = nil
	} else {
		decays := cfg.DecayDate(now)
		state.Decays = &decays
	}
	return RemoveTierResult{Tier: state.Tier, Decays: state.Decays, Removed: true}, nil
}

// Clear lifts the active suspension: flag, end date and cached roles. Category
// tiers stay untouched.
func Clear(record *models.Suspension) {
	record.Suspended = false
	record.Ends = nil
	record.SuspendedRoles = []string{}
}

// Decay runs one decay tick over the five tiered categories of a record.
// Every category whose decay date passed loses one tier; a surviving tier
// starts a fresh decay timer so decay keeps ticking level by level. Returns
// true when the record changed and needs persisting.
func Decay(record *models.Suspension, now time.Time) bool {
	changed := false
	for _, category := range models.TieredCategories() {
		state := record.Infraction(category)
		if state.Tier == 0 || state.Decays == nil || !now.After(*state.Decays) {
			continue
		}

		state.Tier--
		if state.Tier == 0 {
			state.Decays = nil
		} else {
			cfg, _ := Config(category)
			decays := cfg.DecayDate(now)
			state.Decays = &decays
		}
		changed = true
	}
	return changed
}

// Expired reports whether an active suspension ran out and is waiting to be
// reconciled.
func Expired(record *models.Suspension, now time.Time) bool {
	return record.Suspended && record.Ends != nil && !record.Ends.After(now)
}
