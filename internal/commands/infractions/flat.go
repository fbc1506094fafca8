package infractions

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createFlatCommand builds one subcommand per flat-rate category. These add
// a fixed number of days and never touch the escalation tiers.
func createFlatCommand(name, description string) *discord.Command {
	category := models.FlatCategory(name)

	return discord.NewCommand(
		name,
		description,
		"infractions",
		func(ctx *discord.CommandContext) error {
			return flatHandler(ctx, category)
		},
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a sancionar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la sanción",
			Required:    true,
		},
	).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func flatHandler(ctx *discord.CommandContext, category models.FlatCategory) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	reason := ctx.GetStringOption("razon")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar una razón.")
	}

	ends, err := database.ApplyFlatInfraction(user.ID, category, ctx.User().ID, reason)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo aplicar la sanción %s a %s: %v", category, user.ID, err), "Infractions")
		return ctx.ReplyEphemeral("❌ No se pudo registrar la sanción. Inténtalo de nuevo.")
	}

	enforcer, _, publisher := sideEffects(ctx)

	record, err := database.FindOrCreateSuspension(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ La sanción quedó registrada pero no se pudo leer el registro.")
	}

	present, err := enforcer.Enact(record)
	if err != nil {
		logger.Warn(fmt.Sprintf("Fallo al aplicar roles a %s: %v", user.ID, err), "Infractions")
	}
	if !present {
		if err := database.RecordSuspensionDue(user.ID, string(category), reason); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo encolar la suspensión pendiente de %s: %v", user.ID, err), "Infractions")
		}
	}
	publisher.PublishLifecycle("suspended", user.ID, string(category))

	description := fmt.Sprintf("**%s** ha sido suspendido (%s).\n**Razón:** %s\n**Termina:** <t:%d:F>", user.Username, category, reason, ends.Unix())
	if !present {
		description += "\n*El usuario no está en el servidor; los roles se aplicarán cuando vuelva.*"
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⛔ Suspensión registrada",
		Description: description,
		Color:       0xFF0000,
	})
}
