package controllers

import (
	"fmt"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// unsuspensionGrace is how long past the suspension end date an absent user
// is waited for before the record is cleared without restoring roles.
const unsuspensionGrace = 90 * 24 * time.Hour

// UnsuspensionDrain works through the unsuspensions_due queue: users whose
// suspension ran out and who are owed their roles back.
type UnsuspensionDrain struct {
	store    Store
	enforcer *Enforcer
	guild    Guild
	events   Publisher
}

// NewUnsuspensionDrain builds the drain.
func NewUnsuspensionDrain(store Store, enforcer *Enforcer, guild Guild, events Publisher) *UnsuspensionDrain {
	return &UnsuspensionDrain{store: store, enforcer: enforcer, guild: guild, events: events}
}

// Pass runs one drain over the queue.
func (d *UnsuspensionDrain) Pass(now time.Time) {
	entries, err := d.store.DueEntries(models.QueueUnsuspensionDue)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer la cola de des-suspensiones: %v", err), "UnsuspDrain")
		return
	}

	for _, entry := range entries {
		d.drainOne(entry, now)
	}
}

func (d *UnsuspensionDrain) drainOne(entry *models.DueEntry, now time.Time) {
	record, err := d.store.FindOrCreate(entry.DiscordID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer el registro de %s: %v", entry.DiscordID, err), "UnsuspDrain")
		return
	}

	// Already cleared by a moderator or an earlier pass.
	if !record.Suspended {
		d.removeEntry(entry.DiscordID)
		return
	}

	// The suspension was extended after this entry was queued. The entry is
	// stale; the expiry sweep will requeue when the new end date passes.
	if record.Ends != nil && record.Ends.After(now) {
		d.removeEntry(entry.DiscordID)
		return
	}

	present, err := d.enforcer.Restore(record)
	if err != nil {
		logger.Warn(fmt.Sprintf("Fallo al restaurar roles de %s: %v", entry.DiscordID, err), "UnsuspDrain")
		return
	}

	if !present {
		// The grace window runs from the end date itself, so late queueing
		// never extends the wait. Ends is set whenever Suspended is.
		if record.Ends != nil && now.Sub(*record.Ends) < unsuspensionGrace {
			return
		}
		// Abandoned: clear the record so a future return starts clean.
		if err := d.store.Unsuspend(entry.DiscordID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo limpiar el registro abandonado de %s: %v", entry.DiscordID, err), "UnsuspDrain")
			return
		}
		d.removeEntry(entry.DiscordID)
		logger.Info(fmt.Sprintf("Suspensión de %s cerrada sin restaurar roles (usuario ausente)", entry.DiscordID), "UnsuspDrain")
		return
	}

	if err := d.store.Unsuspend(entry.DiscordID); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo limpiar el registro de %s: %v", entry.DiscordID, err), "UnsuspDrain")
		return
	}
	d.removeEntry(entry.DiscordID)

	_ = d.guild.Notify(fmt.Sprintf("<@%s> ha cumplido su suspensión. Roles restaurados.", entry.DiscordID))
	publish(d.events, "unsuspended", entry.DiscordID, "")
	logger.Success(fmt.Sprintf("Des-suspensión completada para %s", entry.DiscordID), "UnsuspDrain")
}

func (d *UnsuspensionDrain) removeEntry(discordID string) {
	if err := d.store.RemoveDue(models.QueueUnsuspensionDue, discordID); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo retirar la entrada de %s: %v", discordID, err), "UnsuspDrain")
	}
}
