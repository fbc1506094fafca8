package suspension

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createUnsuspendCommand builds /suspension unsuspend: a moderator override
// that lifts a suspension immediately, restoring roles when possible.
func createUnsuspendCommand() *discord.Command {
	return discord.NewCommand(
		"unsuspend",
		"Levanta la suspensión de un usuario de inmediato",
		"suspension",
		unsuspendHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a des-suspender",
			Required:    true,
		},
	).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func unsuspendHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	record, err := database.FindOrCreateSuspension(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer el registro del usuario.")
	}

	queued, err := database.IsQueuedForUnsuspension(user.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo consultar la cola de des-suspensiones de %s: %v", user.ID, err), "Suspension")
	}
	if !record.Suspended && !queued {
		return ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no tiene una suspensión activa.", user.Username))
	}

	enforcer, publisher := sideEffects(ctx)

	wasSuspended := record.Suspended
	restored := false
	if record.Suspended {
		present, restoreErr := enforcer.Restore(record)
		if restoreErr != nil {
			logger.Warn(fmt.Sprintf("Fallo al restaurar roles de %s: %v", user.ID, restoreErr), "Suspension")
		}
		restored = present
	}

	if err := database.Unsuspend(user.ID); err != nil {
		logger.Error(fmt.Sprintf("No se pudo levantar la suspensión de %s: %v", user.ID, err), "Suspension")
		return ctx.ReplyEphemeral("❌ No se pudo levantar la suspensión.")
	}

	// The entry would otherwise be drained later as a stale no-op; dropping
	// it now keeps the queue clean.
	if queued {
		if err := database.RemoveDueEntry(models.QueueUnsuspensionDue, user.ID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo retirar la entrada pendiente de %s: %v", user.ID, err), "Suspension")
		}
	}
	if err := database.RemoveDueEntry(models.QueueSuspensionDue, user.ID); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo limpiar la cola de suspensión de %s: %v", user.ID, err), "Suspension")
	}

	publisher.PublishLifecycle("unsuspended", user.ID, "manual")

	message := fmt.Sprintf("✅ Suspensión de **%s** levantada.", user.Username)
	if wasSuspended && !restored {
		message += " El usuario no está en el servidor; sus roles no se restauraron."
	}
	return ctx.Reply(message)
}
