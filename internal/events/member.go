// Package events provides event handlers for member events
package events

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/internal/controllers"
	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/errors"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberAdd checks whether the joining member owes a suspension:
// either a queued entry from when they were absent, or an active suspension
// they tried to shed by leaving and rejoining.
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer errors.RecoverMiddleware()()

	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s#%s en servidor %s",
		m.User.Username, m.User.Discriminator, m.GuildID), "Member")

	cfg := config.Get()
	if cfg.GuildID != "" && m.GuildID != cfg.GuildID {
		return
	}

	// Consume the queue entry first so the drain loop and this handler
	// never both act on the same user.
	entry, queued, err := database.TakeDueEntry(models.QueueSuspensionDue, m.User.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo consultar la cola de suspensión para %s: %v", m.User.ID, err), "Member")
		return
	}

	record, err := database.FindOrCreateSuspension(m.User.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer el registro de %s: %v", m.User.ID, err), "Member")
		return
	}
	if !record.Suspended {
		return
	}

	store := controllers.NewStore()
	guild := controllers.NewGuild(s, cfg.GuildID, cfg.SuspendedChannelID)
	enforcer := controllers.NewEnforcer(guild, store, cfg.SuspendedRoleID, cfg.RankRoleIDs)

	if _, err := enforcer.Enact(record); err != nil {
		logger.Warn(fmt.Sprintf("Fallo al aplicar roles a %s al unirse: %v", m.User.ID, err), "Member")
		// The entry was already consumed; requeue so the drain retries.
		if queued && entry != nil {
			_ = database.RecordSuspensionDue(m.User.ID, entry.Category, entry.Reason)
		}
		return
	}

	if queued && entry != nil && entry.Category != "" {
		_ = guild.Notify(fmt.Sprintf("<@%s> ha vuelto al servidor y su suspensión (%s) ha sido aplicada.", m.User.ID, entry.Category))
	}
	logger.Success(fmt.Sprintf("Suspensión aplicada a %s al unirse", m.User.ID), "Member")
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s#%s salió del servidor %s",
		m.User.Username, m.User.Discriminator, m.GuildID), "Member")
}
