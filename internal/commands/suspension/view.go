package suspension

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createViewCommand builds /suspension ver: the full record of a user.
func createViewCommand() *discord.Command {
	return discord.NewCommand(
		"ver",
		"Muestra el registro de suspensiones de un usuario",
		"suspension",
		viewHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	).RequiresModerator().RequiresSuspendedChannel().RequiresDatabase()
}

func viewHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	record, err := database.FindOrCreateSuspension(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer el registro del usuario.")
	}

	status := "🟢 Sin suspensión activa"
	if record.Suspended {
		if record.Ends != nil {
			status = fmt.Sprintf("🔴 Suspendido hasta <t:%d:F>", record.Ends.Unix())
		} else {
			status = "🔴 Suspendido"
		}
	}

	var tiers strings.Builder
	for _, category := range models.TieredCategories() {
		state := record.Infraction(category)
		if state.Tier == 0 {
			continue
		}
		line := fmt.Sprintf("**%s:** nivel %d", category, state.Tier)
		if state.Decays != nil {
			line += fmt.Sprintf(" (decae <t:%d:R>)", state.Decays.Unix())
		}
		tiers.WriteString(line + "\n")
	}
	if tiers.Len() == 0 {
		tiers.WriteString("Sin niveles activos\n")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Registro de %s", user.Username),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Estado", Value: status},
			{Name: "Niveles", Value: tiers.String()},
		},
		Color: 0x0000FF,
	}

	// Show the tail of the audit history.
	if n := len(record.History); n > 0 {
		start := n - 5
		if start < 0 {
			start = 0
		}
		var history strings.Builder
		for _, entry := range record.History[start:] {
			history.WriteString(fmt.Sprintf("<t:%d:d> %s por <@%s>: %s\n", entry.Timestamp/1000, entry.Category, entry.Moderator, entry.Reason))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Historial (%d en total)", n),
			Value: history.String(),
		})
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
