package controllers

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Guild abstracts the Discord side effects of the controllers: role reads
// and writes plus notices to the suspended channel. Tests supply fakes.
type Guild interface {
	// MemberRoles devuelve los roles del usuario y si está en el servidor.
	MemberRoles(userID string) ([]string, bool, error)
	AddRole(userID, roleID string) error
	RemoveRole(userID, roleID string) error
	Notify(message string) error
}

// discordGuild is the discordgo-backed Guild used in production.
type discordGuild struct {
	session          *discordgo.Session
	guildID          string
	suspendedChannel string
}

// NewGuild returns a Guild bound to one server and its suspended channel.
func NewGuild(session *discordgo.Session, guildID, suspendedChannelID string) Guild {
	return &discordGuild{
		session:          session,
		guildID:          guildID,
		suspendedChannel: suspendedChannelID,
	}
}

func (g *discordGuild) MemberRoles(userID string) ([]string, bool, error) {
	member, err := g.session.GuildMember(g.guildID, userID)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMember {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("fetch member %s: %w", userID, err)
	}
	return member.Roles, true, nil
}

func (g *discordGuild) AddRole(userID, roleID string) error {
	return g.session.GuildMemberRoleAdd(g.guildID, userID, roleID)
}

func (g *discordGuild) RemoveRole(userID, roleID string) error {
	return g.session.GuildMemberRoleRemove(g.guildID, userID, roleID)
}

func (g *discordGuild) Notify(message string) error {
	if g.suspendedChannel == "" {
		return nil
	}
	_, err := g.session.ChannelMessageSend(g.suspendedChannel, message)
	return err
}
