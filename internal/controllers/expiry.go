package controllers

import (
	"fmt"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/suspension"
)

// ExpirySweep scans the suspension records and queues every expired one for
// the unsuspension drain. It never touches the record itself; the drain owns
// the actual restore.
type ExpirySweep struct {
	store Store
}

// NewExpirySweep builds the sweep over the given store.
func NewExpirySweep(store Store) *ExpirySweep {
	return &ExpirySweep{store: store}
}

// Pass runs one scan. Requeueing a user already in the queue is a no-op, so
// a suspension that stays expired across several passes costs nothing extra.
func (s *ExpirySweep) Pass(now time.Time) {
	records, err := s.store.AllSuspensions()
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron leer las suspensiones: %v", err), "Expiry")
		return
	}

	queued := 0
	for _, record := range records {
		if !suspension.Expired(record, now) {
			continue
		}
		if err := s.store.QueueUnsuspensionDue(record.DiscordID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo encolar la des-suspensión de %s: %v", record.DiscordID, err), "Expiry")
			continue
		}
		queued++
	}

	if queued > 0 {
		logger.Info(fmt.Sprintf("%d suspensiones expiradas encoladas", queued), "Expiry")
	}
}
