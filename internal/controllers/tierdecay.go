package controllers

import (
	"fmt"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/suspension"
)

// DecaySweep walks every record and lowers one tier in each category whose
// decay date passed, so old infractions lose weight over time.
type DecaySweep struct {
	store Store
}

// NewDecaySweep builds the sweep over the given store.
func NewDecaySweep(store Store) *DecaySweep {
	return &DecaySweep{store: store}
}

// Pass runs one scan and persists only the records that actually changed.
func (s *DecaySweep) Pass(now time.Time) {
	records, err := s.store.AllSuspensions()
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron leer las suspensiones: %v", err), "Decay")
		return
	}

	decayed := 0
	for _, record := range records {
		if !suspension.Decay(record, now) {
			continue
		}
		if err := s.store.Save(record); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo guardar el decaimiento de %s: %v", record.DiscordID, err), "Decay")
			continue
		}
		decayed++
	}

	if decayed > 0 {
		logger.Info(fmt.Sprintf("Niveles decaídos en %d registros", decayed), "Decay")
	}
}
