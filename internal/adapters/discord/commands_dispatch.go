// Lógica de InteractionApplicationCommand: parsear la interacción y despachar
// a los servicios. Nada de reglas de dominio acá.
package discord

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/levelling-bot/internal/adapters/rankcard"
	"github.com/jose-valero/levelling-bot/internal/app/service"
	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	// solo comandos dentro de un guild
	if ic.Member == nil || ic.Member.User == nil {
		return
	}

	cmd := ic.ApplicationCommandData()
	log.Printf("cmd: /%s by=%s guild=%s", cmd.Name, ic.Member.User.ID, ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Ocurrió un error inesperado procesando el comando.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch cmd.Name {

	case "ping":
		ReplyEphemeral(s, ic, "🏓 Pong!")

	case "rank":
		if !r.rankLimiter.Allow(ic.Member.User.ID) {
			ReplyEphemeral(s, ic, "⏳ Espera unos segundos antes de pedir otra tarjeta.")
			return
		}
		r.handleRank(ctx, s, ic)

	case "top":
		axis, _ := optStr(ic, "axis")
		page, ok := optInt(ic, "page")
		if !ok {
			page = 1
		}
		msg, err := r.board.Top(ctx, ic.GuildID, service.Axis(axis), page)
		if err != nil {
			msg = "⚠️ No pude consultar el leaderboard: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)

	case "xp":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		sub, ok := subcmdName(ic)
		if !ok {
			ReplyEphemeral(s, ic, "Usa `/xp add` o `/xp remove`.")
			return
		}
		uid, ok := optUserID(ic, "member")
		if !ok {
			ReplyEphemeral(s, ic, "⚠️ Falta el miembro.")
			return
		}
		text, _ := optInt(ic, "text")
		voice, _ := optInt(ic, "voice")

		var msg string
		var err error
		switch sub {
		case "add":
			msg, err = r.xp.AddXP(ctx, ic.GuildID, uid, text, voice)
		case "remove":
			msg, err = r.xp.RemoveXP(ctx, ic.GuildID, uid, text, voice)
		}
		if err != nil {
			msg = "⚠️ No se pudo ajustar el XP: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)

	case "levels":
		r.handleLevels(ctx, s, ic)

	case "rewards":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		sub, _ := subcmdName(ic)
		var msg string
		var err error
		switch sub {
		case "add":
			roleID, _ := optRoleID(ic, "role")
			text, _ := optInt(ic, "text")
			voice, _ := optInt(ic, "voice")
			msg, err = r.rewards.Add(ctx, ic.GuildID, roleID, text, voice)
		case "remove":
			roleID, _ := optRoleID(ic, "role")
			msg, err = r.rewards.Remove(ctx, ic.GuildID, roleID)
		case "list":
			msg, err = r.rewards.List(ctx, ic.GuildID)
		default:
			msg = "Usa `/rewards add`, `/rewards remove` o `/rewards list`."
		}
		if err != nil {
			msg = "⚠️ No se pudo: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)

	case "fixxp":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		if uid, ok := optUserID(ic, "member"); ok {
			msg, err := r.xp.FixXP(ctx, ic.GuildID, uid)
			if err != nil {
				msg = "⚠️ No se pudo reparar: " + err.Error()
			}
			ReplyEphemeral(s, ic, msg)
			return
		}
		n, err := r.xp.RepairNegatives(ctx)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo reparar: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Barrido completo: %d balances reparados.", n))
	}
}

func (r *Router) handleRank(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	stop := step("cmd.rank.total")
	defer stop()

	target := ic.Member.User
	if uid, ok := optUserID(ic, "member"); ok && uid != target.ID {
		if u, err := s.User(uid); err == nil {
			target = u
		} else {
			target = &discordgo.User{ID: uid, Username: uid}
		}
	}

	b := r.xp.Balance(ctx, ic.GuildID, target.ID)
	textLevel := service.LevelForPoints(b.TextXP)
	voiceLevel := service.LevelForPoints(b.VoiceXP)
	textIn, textNeed := service.ProgressInLevel(b.TextXP, textLevel)
	voiceIn, voiceNeed := service.ProgressInLevel(b.VoiceXP, voiceLevel)

	name := target.GlobalName
	if name == "" {
		name = target.Username
	}

	png, err := rankcard.Render(rankcard.Card{
		DisplayName: name,
		Avatar:      fetchAvatar(ctx, target.AvatarURL("128")),
		Text: rankcard.AxisProgress{
			Level: textLevel, In: textIn, Need: textNeed,
			Ratio: service.ProgressRatio(b.TextXP, textLevel),
		},
		Voice: rankcard.AxisProgress{
			Level: voiceLevel, In: voiceIn, Need: voiceNeed,
			Ratio: service.ProgressRatio(b.VoiceXP, voiceLevel),
		},
	})
	if err != nil {
		// fallback en texto si el render falla
		log.Printf("rank card render user=%s: %v", target.ID, err)
		ReplyEphemeral(s, ic, fmt.Sprintf(
			"**Rank de %s**\n💬 `Nivel %d` — `%d/%d XP`\n🎧 `Nivel %d` — `%d/%d XP`",
			name, textLevel, textIn, textNeed, voiceLevel, voiceIn, voiceNeed,
		))
		return
	}
	ReplyFile(s, ic, "rank.png", bytes.NewReader(png))
}

func (r *Router) handleLevels(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	sub, _ := subcmdName(ic)

	if sub == "show" {
		msg, err := r.settings.Show(ctx, ic.GuildID)
		if err != nil {
			msg = "⚠️ No pude leer la configuración: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)
		return
	}

	if !r.requireAdminOrRoles(s, ic) {
		return
	}

	var patch storage.GuildSettingsPatch
	switch sub {
	case "channel":
		if id, ok := optChannelID(ic, "channel"); ok {
			patch.LevelChannelID = &id
		}
	case "messages":
		if v, ok := optInt(ic, "min"); ok {
			patch.MsgXPMin = &v
		}
		if v, ok := optInt(ic, "max"); ok {
			patch.MsgXPMax = &v
		}
	case "voice":
		if v, ok := optInt(ic, "amount"); ok {
			patch.VoiceXPPerTick = &v
		}
	default:
		ReplyEphemeral(s, ic, "Usa `/levels show`, `/levels channel`, `/levels messages` o `/levels voice`.")
		return
	}

	msg, err := r.settings.Update(ctx, ic.GuildID, patch)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude actualizar: "+err.Error())
		return
	}
	ReplyEphemeral(s, ic, msg)
}
