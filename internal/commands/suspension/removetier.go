package suspension

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createRemoveTierCommand builds /suspension quitarnivel. Tiers can only be
// corrected while the user is not serving a suspension.
func createRemoveTierCommand() *discord.Command {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 5)
	for _, category := range models.TieredCategories() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(category),
			Value: string(category),
		})
	}

	return discord.NewCommand(
		"quitarnivel",
		"Reduce en uno el nivel de una categoría",
		"suspension",
		removeTierHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a corregir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "categoria",
			Description: "Categoría a reducir",
			Required:    true,
			Choices:     choices,
		},
	).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func removeTierHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	category := models.InfractionCategory(ctx.GetStringOption("categoria"))

	record, err := database.FindOrCreateSuspension(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer el registro del usuario.")
	}
	if record.Suspended {
		return ctx.ReplyEphemeral("❌ No se pueden corregir niveles mientras la suspensión está activa. Usa `/suspension quitardias` o `/suspension unsuspend`.")
	}

	result, err := database.RemoveInfractionTier(user.ID, category)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo reducir el nivel de %s: %v", user.ID, err), "Suspension")
		return ctx.ReplyEphemeral("❌ No se pudo reducir el nivel.")
	}
	if !result.Removed {
		return ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** ya está en nivel 0 de %s.", user.Username, category))
	}

	return ctx.Reply(fmt.Sprintf("📉 Nivel de %s de **%s** reducido a %d.", category, user.Username, result.Tier))
}
