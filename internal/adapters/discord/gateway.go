package discord

import "github.com/bwmarrin/discordgo"

// Gateway implementa los ports del core (RoleGranter, ChannelSender,
// VoicePresence) sobre la sesión de discordgo.
type Gateway struct {
	s *discordgo.Session
}

func NewGateway(s *discordgo.Session) *Gateway { return &Gateway{s: s} }

func (g *Gateway) HasRole(guildID, userID, roleID string) (bool, error) {
	m, err := g.s.State.Member(guildID, userID)
	if err != nil || m == nil {
		m, err = g.s.GuildMember(guildID, userID)
		if err != nil {
			return false, err
		}
	}
	for _, rid := range m.Roles {
		if rid == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (g *Gateway) GrantRole(guildID, userID, roleID string) error {
	return g.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (g *Gateway) Send(channelID, content string) error {
	_, err := g.s.ChannelMessageSend(channelID, content)
	return err
}

// InVoice: ¿sigue el usuario conectado a voz en ese guild? (cache del gateway)
func (g *Gateway) InVoice(guildID, userID string) bool {
	vs, err := g.s.State.VoiceState(guildID, userID)
	return err == nil && vs != nil && vs.ChannelID != ""
}
