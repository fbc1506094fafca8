// Package suspension provides the /suspension command group for managing
// active suspensions: adjusting days, lowering tiers, lifting suspensions
// and inspecting records.
package suspension

import (
	"github.com/PancyStudios/SuspensionBotGo/internal/controllers"
	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/mqtt"
	"github.com/PancyStudios/SuspensionBotGo/pkg/web"
)

// RegisterSuspensionCommands registers the /suspension command group.
func RegisterSuspensionCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"suspension",
		"Gestiona las suspensiones activas",
		createAddDaysCommand(),
		createRemoveDaysCommand(),
		createRemoveTierCommand(),
		createUnsuspendCommand(),
		createViewCommand(),
	)

	client.CommandHandler.AddGlobalCommand(group)
}

func sideEffects(ctx *discord.CommandContext) (*controllers.Enforcer, controllers.Publisher) {
	cfg := config.Get()
	store := controllers.NewStore()
	guild := controllers.NewGuild(ctx.Session, cfg.GuildID, cfg.SuspendedChannelID)
	enforcer := controllers.NewEnforcer(guild, store, cfg.SuspendedRoleID, cfg.RankRoleIDs)

	publisher := controllers.MultiPublisher{web.Feed()}
	if mc := mqtt.Get(); mc != nil {
		publisher = append(publisher, mc)
	}
	return enforcer, publisher
}
