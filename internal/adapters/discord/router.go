package discord

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/levelling-bot/internal/app/service"
)

type Router struct {
	s       *discordgo.Session
	guildID string // vacío = comandos globales

	xp       *service.XPService
	guard    *service.SpamGuard
	tracker  *service.VoiceTracker
	board    *service.LeaderboardService
	settings *service.SettingsService
	rewards  *service.RewardsService

	adminRoleIDs []string
	rankLimiter  *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	xp *service.XPService,
	guard *service.SpamGuard,
	tracker *service.VoiceTracker,
	board *service.LeaderboardService,
	settings *service.SettingsService,
	rewards *service.RewardsService,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		xp:           xp,
		guard:        guard,
		tracker:      tracker,
		board:        board,
		settings:     settings,
		rewards:      rewards,
		adminRoleIDs: adminRoleIDs,
		rankLimiter:  newUserLimiter(5 * time.Second),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
	r.s.AddHandler(r.onMessageCreate)
	r.s.AddHandler(r.onVoiceStateUpdate)
}

// onMessageCreate: camino caliente de XP de texto. El guard decide; si admite,
// el ledger acredita y corre el chequeo de level-up.
func (r *Router) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	length := utf8.RuneCountInString(strings.TrimSpace(m.Content))
	if !r.guard.Admit(m.GuildID, m.Author.ID, length, time.Now()) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.xp.AwardMessageXP(ctx, m.GuildID, m.Author.ID); err != nil {
		log.Printf("xp mensaje guild=%s user=%s: %v", m.GuildID, m.Author.ID, err)
	}
}

// onVoiceStateUpdate: reduce el evento a (guild, user, canal) para el tracker.
// Un move entre canales del mismo guild mantiene la sesión.
func (r *Router) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if vs.UserID == s.State.User.ID {
		return
	}
	if vs.Member != nil && vs.Member.User != nil && vs.Member.User.Bot {
		return
	}
	r.tracker.HandleUpdate(vs.GuildID, vs.UserID, vs.ChannelID)
}
