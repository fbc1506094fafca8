package controllers

import (
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/bwmarrin/discordgo"
)

// Manager owns the four reconciliation loops and their shared collaborators.
type Manager struct {
	sweepers []*Sweeper
}

// NewManager wires the sweeps and drains against the live guild and the
// global data managers, with the intervals from the configuration.
func NewManager(session *discordgo.Session, cfg *config.Config, events Publisher) *Manager {
	store := NewStore()
	guild := NewGuild(session, cfg.GuildID, cfg.SuspendedChannelID)
	enforcer := NewEnforcer(guild, store, cfg.SuspendedRoleID, cfg.RankRoleIDs)

	expiry := NewExpirySweep(store)
	decay := NewDecaySweep(store)
	suspDrain := NewSuspensionDrain(store, enforcer, guild, events)
	unsuspDrain := NewUnsuspensionDrain(store, enforcer, guild, events)

	return &Manager{
		sweepers: []*Sweeper{
			NewSweeper("expiry", cfg.ExpirySweepInterval, func() { expiry.Pass(time.Now()) }),
			NewSweeper("tier-decay", cfg.TierDecayInterval, func() { decay.Pass(time.Now()) }),
			NewSweeper("suspension-drain", cfg.SuspensionDrainInterval, func() { suspDrain.Pass(time.Now()) }),
			NewSweeper("unsuspension-drain", cfg.UnsuspensionDrainInterval, func() { unsuspDrain.Pass(time.Now()) }),
		},
	}
}

// Start launches every loop.
func (m *Manager) Start() {
	for _, s := range m.sweepers {
		s.Start()
	}
}

// Stop halts every loop and waits for in-flight passes.
func (m *Manager) Stop() {
	for _, s := range m.sweepers {
		s.Stop()
	}
}
