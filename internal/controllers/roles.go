package controllers

import (
	"fmt"

	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// Enforcer applies and reverts the role side of a suspension: it swaps the
// member's rank roles for the suspended role and back again.
type Enforcer struct {
	guild         Guild
	store         Store
	suspendedRole string
	rankRoles     []string
}

// NewEnforcer builds an Enforcer for one guild's role layout.
func NewEnforcer(guild Guild, store Store, suspendedRoleID string, rankRoleIDs []string) *Enforcer {
	return &Enforcer{
		guild:         guild,
		store:         store,
		suspendedRole: suspendedRoleID,
		rankRoles:     rankRoleIDs,
	}
}

func (e *Enforcer) isRankRole(roleID string) bool {
	for _, id := range e.rankRoles {
		if id == roleID {
			return true
		}
	}
	return false
}

// Enact strips the member's rank roles, caches them on the record for the
// later restore, and hands out the suspended role. Reports whether the
// member was present; an absent member is not an error.
func (e *Enforcer) Enact(record *models.Suspension) (bool, error) {
	roles, present, err := e.guild.MemberRoles(record.DiscordID)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	stripped := make([]string, 0, len(roles))
	for _, roleID := range roles {
		if !e.isRankRole(roleID) {
			continue
		}
		if err := e.guild.RemoveRole(record.DiscordID, roleID); err != nil {
			return true, fmt.Errorf("quitar rol %s: %w", roleID, err)
		}
		stripped = append(stripped, roleID)
	}

	// Cache the stripped roles before touching the suspended role so a
	// failure here never loses what the user had.
	if len(stripped) > 0 {
		record.SuspendedRoles = append(record.SuspendedRoles, stripped...)
		if err := e.store.Save(record); err != nil {
			return true, err
		}
	}

	if e.suspendedRole != "" {
		if err := e.guild.AddRole(record.DiscordID, e.suspendedRole); err != nil {
			return true, fmt.Errorf("asignar rol de suspensión: %w", err)
		}
	}

	logger.Info(fmt.Sprintf("Roles de suspensión aplicados a %s (%d roles retirados)", record.DiscordID, len(stripped)), "Roles")
	return true, nil
}

// Restore removes the suspended role and gives back the cached rank roles.
// Reports whether the member was present.
func (e *Enforcer) Restore(record *models.Suspension) (bool, error) {
	_, present, err := e.guild.MemberRoles(record.DiscordID)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	if e.suspendedRole != "" {
		if err := e.guild.RemoveRole(record.DiscordID, e.suspendedRole); err != nil {
			return true, fmt.Errorf("retirar rol de suspensión: %w", err)
		}
	}

	for _, roleID := range record.SuspendedRoles {
		if err := e.guild.AddRole(record.DiscordID, roleID); err != nil {
			// A role deleted from the guild since the suspension is not
			// worth blocking the restore.
			logger.Warn(fmt.Sprintf("No se pudo devolver el rol %s a %s", roleID, record.DiscordID), "Roles")
		}
	}

	logger.Info(fmt.Sprintf("Roles restaurados para %s (%d roles)", record.DiscordID, len(record.SuspendedRoles)), "Roles")
	return true, nil
}
