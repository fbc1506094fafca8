package database

import (
	"errors"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrDueManagerNotInitialized = errors.New("due queue data managers not initialized")

func getDueManager(queue models.DueQueue) (*DataManager[models.DueEntry], error) {
	var dm *DataManager[models.DueEntry]
	switch queue {
	case models.QueueSuspensionDue:
		dm = GlobalSuspensionDueDM
	case models.QueueUnsuspensionDue:
		dm = GlobalUnsuspensionDueDM
	case models.QueueBanDue:
		dm = GlobalBanDueDM
	}
	if dm == nil {
		return nil, ErrDueManagerNotInitialized
	}
	return dm, nil
}

// RecordSuspensionDue encola a un usuario ausente para suspenderlo cuando
// vuelva. Idempotent: a second call for the same user is a no-op.
func RecordSuspensionDue(discordID, category, reason string) error {
	dm, err := getDueManager(models.QueueSuspensionDue)
	if err != nil {
		return err
	}
	return dm.InsertIfAbsent(models.DueEntry{
		DiscordID: discordID,
		CreatedAt: time.Now(),
		Category:  category,
		Reason:    reason,
	})
}

// RecordUnsuspensionDue queues a user whose suspension expired but who could
// not be restored yet (offline guild member, API failure). Idempotent.
func RecordUnsuspensionDue(discordID string) error {
	dm, err := getDueManager(models.QueueUnsuspensionDue)
	if err != nil {
		return err
	}
	return dm.InsertIfAbsent(models.DueEntry{
		DiscordID: discordID,
		CreatedAt: time.Now(),
	})
}

// RecordBanDue marks a user as having crossed a ban threshold. The entry is
// advisory and write-once; nothing in the bot consumes it automatically.
func RecordBanDue(discordID, category, reason string) error {
	dm, err := getDueManager(models.QueueBanDue)
	if err != nil {
		return err
	}
	return dm.InsertIfAbsent(models.DueEntry{
		DiscordID: discordID,
		CreatedAt: time.Now(),
		Category:  category,
		Reason:    reason,
	})
}

// GetDueEntries returns the full worklist of a queue for a drain pass.
func GetDueEntries(queue models.DueQueue) ([]*models.DueEntry, error) {
	dm, err := getDueManager(queue)
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// RemoveDueEntry drops a user's entry from a queue once the pending action
// was carried out (or discarded as stale).
func RemoveDueEntry(queue models.DueQueue, discordID string) error {
	dm, err := getDueManager(queue)
	if err != nil {
		return err
	}
	return dm.Delete(bson.M{"_id": discordID})
}

// TakeDueEntry consumes a user's entry from a queue, returning it exactly
// once. A concurrent drain and member-join both calling this race on the
// delete; only one of them gets ok=true and acts.
func TakeDueEntry(queue models.DueQueue, discordID string) (*models.DueEntry, bool, error) {
	dm, err := getDueManager(queue)
	if err != nil {
		return nil, false, err
	}

	query := bson.M{"_id": discordID}
	entry, err := dm.Get(query)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, nil
	}

	ok, err := dm.DeleteExisting(query)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return entry, true, nil
}

// IsQueuedForUnsuspension reports whether the user is waiting in the
// unsuspension queue, without consuming the entry.
func IsQueuedForUnsuspension(discordID string) (bool, error) {
	dm, err := getDueManager(models.QueueUnsuspensionDue)
	if err != nil {
		return false, err
	}
	entry, err := dm.Get(bson.M{"_id": discordID})
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}
