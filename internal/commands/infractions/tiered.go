package infractions

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createTieredCommand builds one subcommand per tiered category. All of them
// share the escalation handler; only the category differs.
func createTieredCommand(name, description string) *discord.Command {
	category := models.InfractionCategory(name)

	return discord.NewCommand(
		name,
		description,
		"infractions",
		func(ctx *discord.CommandContext) error {
			return tieredHandler(ctx, category)
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
			Description: "Razón de la infracción",
			Required:    true,
		},
	).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

// tieredHandler records the infraction, applies the roles when the user is
// in the server and queues the pending work when they are not.
func tieredHandler(ctx *discord.CommandContext, category models.InfractionCategory) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	reason := ctx.GetStringOption("razon")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar una razón.")
	}

	result, err := database.RecordInfraction(user.ID, category, ctx.User().ID, reason)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo registrar la infracción de %s: %v", user.ID, err), "Infractions")
		return ctx.ReplyEphemeral("❌ No se pudo registrar la infracción. Inténtalo de nuevo.")
	}

	enforcer, _, publisher := sideEffects(ctx)

	// The first minor infraction is only a warning; no roles change hands.
	if result.Warning {
		publisher.PublishLifecycle("warned", user.ID, string(category))
		return ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "⚠️ Advertencia registrada",
			Description: fmt.Sprintf("**%s** recibió una advertencia (%s, nivel %d).\n**Razón:** %s", user.Username, category, result.Tier, reason),
			Color:       0xFFFF00,
		})
	}

	record, err := database.FindOrCreateSuspension(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ La infracción quedó registrada pero no se pudo leer el registro.")
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

	if result.BanDue {
		if err := database.RecordBanDue(user.ID, string(category), reason); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo marcar el ban pendiente de %s: %v", user.ID, err), "Infractions")
		}
		publisher.PublishLifecycle("ban_due", user.ID, string(category))
	}
	publisher.PublishLifecycle("suspended", user.ID, string(category))

	description := fmt.Sprintf("**%s** ha sido suspendido (%s, nivel %d).\n**Razón:** %s", user.Username, category, result.Tier, reason)
	if result.Ends != nil {
		description += fmt.Sprintf("\n**Termina:** <t:%d:F>", result.Ends.Unix())
	}
	if !present {
		description += "\n*El usuario no está en el servidor; los roles se aplicarán cuando vuelva.*"
	}
	if result.BanDue {
		description += "\n🔨 **El usuario alcanzó el umbral de baneo.**"
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⛔ Suspensión registrada",
		Description: description,
		Color:       0xFF0000,
	})
}
