// Package infractions provides the /infraccion command group: the tiered
// categories plus the flat-rate punishments.
package infractions

import (
	"github.com/PancyStudios/SuspensionBotGo/internal/controllers"
	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/mqtt"
	"github.com/PancyStudios/SuspensionBotGo/pkg/web"
)

// RegisterInfractionCommands registers every punishment as an /infraccion
// subcommand.
func RegisterInfractionCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"infraccion",
		"Registra una infracción a un usuario",
		createTieredCommand("quit", "Registra un abandono de partida"),
		createTieredCommand("minor", "Registra una infracción menor"),
		createTieredCommand("moderate", "Registra una infracción moderada"),
		createTieredCommand("major", "Registra una infracción mayor"),
		createTieredCommand("extreme", "Registra una infracción extrema"),
		createFlatCommand("oversub", "Suspensión por sobre-inscripción (3 días)"),
		createFlatCommand("comp", "Suspensión por cuenta compartida (7 días)"),
		createFlatCommand("smurf", "Suspensión por cuenta smurf (30 días)"),
	)

	client.CommandHandler.AddGlobalCommand(group)
}

// sideEffects builds the role enforcer and event publisher for one
// interaction against the configured guild.
func sideEffects(ctx *discord.CommandContext) (*controllers.Enforcer, controllers.Guild, controllers.Publisher) {
	cfg := config.Get()
	store := controllers.NewStore()
	guild := controllers.NewGuild(ctx.Session, cfg.GuildID, cfg.SuspendedChannelID)
	enforcer := controllers.NewEnforcer(guild, store, cfg.SuspendedRoleID, cfg.RankRoleIDs)

	publisher := controllers.MultiPublisher{web.Feed()}
	if mc := mqtt.Get(); mc != nil {
		publisher = append(publisher, mc)
	}
	return enforcer, guild, publisher
}
