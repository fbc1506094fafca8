// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category.
package commands

import (
	"github.com/PancyStudios/SuspensionBotGo/internal/commands/dev"
	"github.com/PancyStudios/SuspensionBotGo/internal/commands/infractions"
	"github.com/PancyStudios/SuspensionBotGo/internal/commands/suspension"
	"github.com/PancyStudios/SuspensionBotGo/internal/commands/utils"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, ...)
	utils.RegisterUtilsCommands(client)

	// Punishment commands (/infraccion quit, /infraccion smurf, ...)
	infractions.RegisterInfractionCommands(client)

	// Suspension management (/suspension adddias, /suspension unsuspend, ...)
	suspension.RegisterSuspensionCommands(client)

	// Dev-only commands, registered in the dev guild
	dev.Register(client)
}
