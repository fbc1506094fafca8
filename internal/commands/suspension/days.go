package suspension

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/suspension"
	"github.com/bwmarrin/discordgo"
)

func daysOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuya suspensión se ajusta",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Número de días",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	}
}

// createAddDaysCommand builds /suspension adddias.
func createAddDaysCommand() *discord.Command {
	return discord.NewCommand(
		"adddias",
		"Extiende una suspensión en N días",
		"suspension",
		addDaysHandler,
	).WithOptions(daysOptions()...).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func addDaysHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	days := int(ctx.GetIntOption("dias"))

	ends, err := database.AddSuspensionDays(user.ID, days)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudieron añadir días a %s: %v", user.ID, err), "Suspension")
		return ctx.ReplyEphemeral("❌ No se pudo ajustar la suspensión.")
	}

	// Extending an unsuspended user suspends them; make sure the roles
	// follow when they are in the server.
	enforcer, publisher := sideEffects(ctx)
	record, recErr := database.FindOrCreateSuspension(user.ID)
	if recErr == nil {
		present, enactErr := enforcer.Enact(record)
		if enactErr != nil {
			logger.Warn(fmt.Sprintf("Fallo al aplicar roles a %s: %v", user.ID, enactErr), "Suspension")
		}
		if !present {
			if err := database.RecordSuspensionDue(user.ID, "", "ajuste de días"); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo encolar la suspensión pendiente de %s: %v", user.ID, err), "Suspension")
			}
		}
	}
	publisher.PublishLifecycle("extended", user.ID, fmt.Sprintf("+%d", days))

	return ctx.Reply(fmt.Sprintf("⏱️ Suspensión de **%s** extendida %d días. Termina: <t:%d:F>", user.Username, days, ends.Unix()))
}

// createRemoveDaysCommand builds /suspension quitardias.
func createRemoveDaysCommand() *discord.Command {
	return discord.NewCommand(
		"quitardias",
		"Acorta una suspensión en N días",
		"suspension",
		removeDaysHandler,
	).WithOptions(daysOptions()...).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func removeDaysHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	days := int(ctx.GetIntOption("dias"))

	ends, err := database.RemoveSuspensionDays(user.ID, days)
	if err != nil {
		if errors.Is(err, suspension.ErrNoActiveEnd) {
			return ctx.ReplyEphemeral("❌ El usuario no tiene una suspensión con fecha de término.")
		}
		logger.Error(fmt.Sprintf("No se pudieron quitar días a %s: %v", user.ID, err), "Suspension")
		return ctx.ReplyEphemeral("❌ No se pudo ajustar la suspensión.")
	}

	_, publisher := sideEffects(ctx)
	publisher.PublishLifecycle("shortened", user.ID, fmt.Sprintf("-%d", days))

	// An end date now in the past is picked up by the expiry sweep.
	return ctx.Reply(fmt.Sprintf("⏱️ Suspensión de **%s** acortada %d días. Termina: <t:%d:F>", user.Username, days, ends.Unix()))
}
