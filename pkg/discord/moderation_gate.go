package discord

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/config"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
)

// ModerationGate enforces the command's restrictions before it runs: the
// suspended channel constraint and the moderator/backend role constraint.
// A rejected interaction gets an ephemeral notice.
func (c *ExtendedClient) ModerationGate(ctx *CommandContext, cmd *Command) error {
	cfg := config.Get()

	if cmd.InSuspendedChannel && cfg.SuspendedChannelID != "" {
		if ctx.Interaction.ChannelID != cfg.SuspendedChannelID {
			ctx.ReplyEphemeral(fmt.Sprintf("Este comando solo puede usarse en <#%s>.", cfg.SuspendedChannelID))
			return fmt.Errorf("wrong channel for %s", cmd.Name)
		}
	}

	if cmd.ModOnly {
		member := ctx.Member()
		if member == nil || !hasAnyRole(member.Roles, cfg.ModeratorRoleID, cfg.BackendRoleID) {
			ctx.ReplyEphemeral("No tienes permiso para usar este comando.")
			logger.Warn(fmt.Sprintf("Usuario %s intentó usar el comando de moderación '%s'", ctx.User().ID, cmd.Name), "ModGate")
			return fmt.Errorf("user lacks moderation roles for %s", cmd.Name)
		}
	}

	return nil
}

func hasAnyRole(roles []string, wanted ...string) bool {
	for _, want := range wanted {
		if want == "" {
			continue
		}
		for _, have := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
