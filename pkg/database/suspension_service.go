package database

import (
	"errors"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/PancyStudios/SuspensionBotGo/pkg/suspension"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrSuspensionManagerNotInitialized = errors.New("suspension data manager not initialized")
	// ErrRecordUnavailable se devuelve cuando la DB está offline y no hay
	// documento para operar.
	ErrRecordUnavailable = errors.New("registro de suspensión no disponible")
)

func getSuspensionManager() (*DataManager[models.Suspension], error) {
	if GlobalSuspensionDM == nil {
		return nil, ErrSuspensionManagerNotInitialized
	}
	return GlobalSuspensionDM, nil
}

// FindOrCreateSuspension busca el registro de un usuario; si no existe lo
// crea con los valores por defecto (find-or-create, nunca se borra).
func FindOrCreateSuspension(discordID string) (*models.Suspension, error) {
	dm, err := getSuspensionManager()
	if err != nil {
		return nil, err
	}

	query := bson.M{"discord_id": discordID}
	record, err := dm.Get(query)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	created, err := dm.Set(query, models.NewSuspension(discordID))
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrRecordUnavailable
	}
	return created, nil
}

// SaveSuspension persists a mutated record keyed by its discord id.
func SaveSuspension(record *models.Suspension) error {
	dm, err := getSuspensionManager()
	if err != nil {
		return err
	}
	_, err = dm.Set(bson.M{"discord_id": record.DiscordID}, record)
	return err
}

// GetAllSuspensions returns every suspension record; the sweepers walk this.
func GetAllSuspensions() ([]*models.Suspension, error) {
	dm, err := getSuspensionManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// appendAudit agrega una entrada al historial del registro
func appendAudit(record *models.Suspension, category string, tier int, moderator, reason string) {
	record.History = append(record.History, models.AuditEntry{
		ID:        uuid.New().String(),
		Category:  category,
		Tier:      tier,
		Moderator: moderator,
		Reason:    reason,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RecordInfraction advances the user's tier in a category, restacks the
// suspension end date and persists the record. The caller reads the result to
// decide role side effects, notices and ban-due queueing.
func RecordInfraction(discordID string, category models.InfractionCategory, moderator, reason string) (suspension.Result, error) {
	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return suspension.Result{}, err
	}

	result, err := suspension.Apply(record, category, time.Now())
	if err != nil {
		return suspension.Result{}, err
	}
	appendAudit(record, string(category), result.Tier, moderator, reason)

	if err := SaveSuspension(record); err != nil {
		return suspension.Result{}, err
	}
	return result, nil
}

// ApplyFlatInfraction adds the fixed day count of a flat-rate category
// (oversub/comp/smurf) on top of the remaining suspension. No tier involved.
func ApplyFlatInfraction(discordID string, category models.FlatCategory, moderator, reason string) (time.Time, error) {
	days, ok := suspension.FlatDays(category)
	if !ok {
		return time.Time{}, suspension.ErrUnknownCategory
	}

	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return time.Time{}, err
	}

	ends := suspension.AddDays(record, days, time.Now())
	appendAudit(record, string(category), 0, moderator, reason)

	if err := SaveSuspension(record); err != nil {
		return time.Time{}, err
	}
	return ends, nil
}

// AddSuspensionDays extends a suspension by n days from max(now, current end).
func AddSuspensionDays(discordID string, n int) (time.Time, error) {
	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return time.Time{}, err
	}

	ends := suspension.AddDays(record, n, time.Now())
	if err := SaveSuspension(record); err != nil {
		return time.Time{}, err
	}
	return ends, nil
}

// RemoveSuspensionDays shortens a suspension by n days. Returns
// suspension.ErrNoActiveEnd when there is nothing to shorten; an end date
// pushed into the past is left for the expiry sweep to reconcile.
func RemoveSuspensionDays(discordID string, n int) (time.Time, error) {
	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return time.Time{}, err
	}

	ends, err := suspension.RemoveDays(record, n)
	if err != nil {
		return time.Time{}, err
	}
	if err := SaveSuspension(record); err != nil {
		return time.Time{}, err
	}
	return ends, nil
}

// RemoveInfractionTier lowers one tier in a category. The caller enforces
// that the user is not actively suspended.
func RemoveInfractionTier(discordID string, category models.InfractionCategory) (suspension.RemoveTierResult, error) {
	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return suspension.RemoveTierResult{}, err
	}

	result, err := suspension.RemoveTier(record, category, time.Now())
	if err != nil {
		return suspension.RemoveTierResult{}, err
	}
	if !result.Removed {
		// Nothing changed; skip the write.
		return result, nil
	}
	if err := SaveSuspension(record); err != nil {
		return suspension.RemoveTierResult{}, err
	}
	return result, nil
}

// Unsuspend clears the active suspension (flag, end date, cached roles).
// Category tiers survive.
func Unsuspend(discordID string) error {
	record, err := FindOrCreateSuspension(discordID)
	if err != nil {
		return err
	}
	suspension.Clear(record)
	return SaveSuspension(record)
}
