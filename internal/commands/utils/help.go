package utils

import (
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de Suspension Bot Go**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/utils stats` - Estadísticas del bot\n" +
				"• `/infraccion quit|minor|moderate|major|extreme <usuario> <razón>` - Registra una infracción escalonada\n" +
				"• `/infraccion oversub|comp|smurf <usuario> <razón>` - Aplica una sanción de días fijos\n" +
				"• `/suspension adddias <usuario> <días>` - Extiende una suspensión\n" +
				"• `/suspension quitardias <usuario> <días>` - Acorta una suspensión\n" +
				"• `/suspension quitarnivel <usuario> <categoría>` - Reduce un nivel\n" +
				"• `/suspension unsuspend <usuario>` - Levanta una suspensión\n" +
				"• `/suspension ver <usuario>` - Muestra el registro completo",
		)
	}()
	return nil
}
