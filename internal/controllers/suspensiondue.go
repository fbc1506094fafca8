package controllers

import (
	"fmt"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// SuspensionDrain works through the suspensions_due queue: users whose
// punishment was decided while they were outside the server. Entries are
// retried on every pass until the user shows up; there is no give-up window.
type SuspensionDrain struct {
	store    Store
	enforcer *Enforcer
	guild    Guild
	events   Publisher
}

// NewSuspensionDrain builds the drain.
func NewSuspensionDrain(store Store, enforcer *Enforcer, guild Guild, events Publisher) *SuspensionDrain {
	return &SuspensionDrain{store: store, enforcer: enforcer, guild: guild, events: events}
}

// Pass runs one drain over the queue.
func (d *SuspensionDrain) Pass(now time.Time) {
	entries, err := d.store.DueEntries(models.QueueSuspensionDue)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer la cola de suspensiones: %v", err), "SuspDrain")
		return
	}

	for _, entry := range entries {
		d.drainOne(entry)
	}
}

func (d *SuspensionDrain) drainOne(entry *models.DueEntry) {
	record, err := d.store.FindOrCreate(entry.DiscordID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer el registro de %s: %v", entry.DiscordID, err), "SuspDrain")
		return
	}

	// The suspension was lifted while the user was away; nothing to enact.
	if !record.Suspended {
		if err := d.store.RemoveDue(models.QueueSuspensionDue, entry.DiscordID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo retirar la entrada obsoleta de %s: %v", entry.DiscordID, err), "SuspDrain")
		}
		return
	}

	present, err := d.enforcer.Enact(record)
	if err != nil {
		logger.Warn(fmt.Sprintf("Fallo al aplicar roles a %s: %v", entry.DiscordID, err), "SuspDrain")
		return
	}
	if !present {
		// Still out of the server; try again next pass.
		return
	}

	if record.Ends != nil {
		_ = d.guild.Notify(fmt.Sprintf("<@%s> ha sido suspendido (%s). Termina: <t:%d:F>", entry.DiscordID, entry.Category, record.Ends.Unix()))
	} else {
		_ = d.guild.Notify(fmt.Sprintf("<@%s> ha sido suspendido (%s).", entry.DiscordID, entry.Category))
	}

	if err := d.store.RemoveDue(models.QueueSuspensionDue, entry.DiscordID); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo retirar la entrada de %s: %v", entry.DiscordID, err), "SuspDrain")
		return
	}

	publish(d.events, "suspended", entry.DiscordID, entry.Category)
	logger.Success(fmt.Sprintf("Suspensión pendiente aplicada a %s", entry.DiscordID), "SuspDrain")
}
