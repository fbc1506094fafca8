package utils

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/errors"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		queueLine := func(queue models.DueQueue) string {
			entries, err := database.GetDueEntries(queue)
			if err != nil {
				return "?"
			}
			return fmt.Sprintf("%d", len(entries))
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Servidores: %d\n"+
				"• Suspensiones pendientes: %s\n"+
				"• Des-suspensiones pendientes: %s\n"+
				"• Bans pendientes: %s",
			dbStatus,
			ctx.Client.GuildCount(),
			queueLine(models.QueueSuspensionDue),
			queueLine(models.QueueUnsuspensionDue),
			queueLine(models.QueueBanDue),
		))
	}()
	return nil
}
