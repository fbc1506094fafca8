// Package events provides event handlers for the bot
package events

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/SuspensionBotGo/internal/controllers"
	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/mqtt"
	"github.com/PancyStudios/SuspensionBotGo/pkg/web"
	"github.com/bwmarrin/discordgo"
)

var (
	manager     *controllers.Manager
	managerOnce sync.Once
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(onReady)
	client.Session.AddHandler(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot conectado: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Conectado a %d servidores", len(r.Guilds)), "Ready")

	// Establecer estado del bot
	err := s.UpdateGameStatus(0, "👀 Vigilando las suspensiones")
	if err != nil {
		logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
	}

	// The reconciliation loops start once, on the first ready. A gateway
	// resume fires ready again but must not double the loops.
	managerOnce.Do(func() {
		publisher := controllers.MultiPublisher{web.Feed()}
		if mc := mqtt.Get(); mc != nil {
			publisher = append(publisher, mc)
		}
		manager = controllers.NewManager(s, config.Get(), publisher)
		manager.Start()
		logger.Success("✅ Loops de reconciliación iniciados", "Ready")
	})
}

// StopControllers halts the reconciliation loops during shutdown.
func StopControllers() {
	if manager != nil {
		manager.Stop()
	}
}

func onDebug(s *discordgo.Session, log string) {
	logger.Debug(log, "DiscordGO")
}
