package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

// XPService es el ledger de actividad: único escritor lógico por (guild, user).
// El clamp a 0 vive acá y en ningún otro lado; el storage es un get/put tonto.
type XPService struct {
	xp       XPRepo
	settings SettingsRepo
	rewards  RewardsRepo
	roles    RoleGranter
	notify   ChannelSender

	mu    sync.Mutex
	locks map[MemberKey]*sync.Mutex
}

func NewXPService(xp XPRepo, settings SettingsRepo, rewards RewardsRepo, roles RoleGranter, notify ChannelSender) *XPService {
	return &XPService{
		xp:       xp,
		settings: settings,
		rewards:  rewards,
		roles:    roles,
		notify:   notify,
		locks:    map[MemberKey]*sync.Mutex{},
	}
}

func (s *XPService) keyLock(k MemberKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[k]
	if !ok {
		m = &sync.Mutex{}
		s.locks[k] = m
	}
	return m
}

// Balance: lectura con clamp defensivo; storage roto o ausente = balance cero.
func (s *XPService) Balance(ctx context.Context, guildID, userID string) storage.XPBalance {
	b, err := s.xp.Get(ctx, guildID, userID)
	if err != nil {
		log.Printf("xp get guild=%s user=%s: %v (asumo 0)", guildID, userID, err)
		b = storage.XPBalance{GuildID: guildID, UserID: userID}
	}
	b.TextXP = max(0, b.TextXP)
	b.VoiceXP = max(0, b.VoiceXP)
	return b
}

// apply: read-modify-write serializado por clave. Los deltas pueden ser
// negativos (remove); el resultado queda clampeado en 0 siempre.
func (s *XPService) apply(ctx context.Context, guildID, userID string, textDelta, voiceDelta int) (old, nw storage.XPBalance, err error) {
	lk := s.keyLock(MemberKey{GuildID: guildID, UserID: userID})
	lk.Lock()
	defer lk.Unlock()

	old = s.Balance(ctx, guildID, userID)
	nw = old
	nw.TextXP = max(0, old.TextXP+textDelta)
	nw.VoiceXP = max(0, old.VoiceXP+voiceDelta)

	if err = s.xp.Put(ctx, nw); err != nil {
		return old, old, fmt.Errorf("xp put: %w", err)
	}
	return old, nw, nil
}

// AwardMessageXP: camino de mensajes. El spam guard ya admitió; acá se sortea
// la ganancia según settings del guild y se corre el chequeo de level-up.
func (s *XPService) AwardMessageXP(ctx context.Context, guildID, userID string) error {
	st := s.guildSettings(ctx, guildID)

	gain := st.MsgXPMin
	if st.MsgXPMax > st.MsgXPMin {
		gain += rand.Intn(st.MsgXPMax - st.MsgXPMin + 1)
	}
	gain = max(1, gain)

	old, nw, err := s.apply(ctx, guildID, userID, gain, 0)
	if err != nil {
		return err
	}
	s.checkLevelUp(ctx, guildID, userID, old, nw)
	return nil
}

// AwardVoiceXP: camino del tick; pts viene de settings (ya leídos en batch).
func (s *XPService) AwardVoiceXP(ctx context.Context, guildID, userID string, pts int) error {
	if pts <= 0 {
		return nil
	}
	old, nw, err := s.apply(ctx, guildID, userID, 0, pts)
	if err != nil {
		return err
	}
	s.checkLevelUp(ctx, guildID, userID, old, nw)
	return nil
}

// AddXP: comando admin. Valida en el borde y devuelve mensaje para el usuario.
func (s *XPService) AddXP(ctx context.Context, guildID, userID string, text, voice int) (string, error) {
	if text < 0 || voice < 0 {
		return "⚠️ Los valores de XP deben ser 0 o mayores.", nil
	}
	if text == 0 && voice == 0 {
		return "⚠️ Indica al menos un valor de XP a agregar.", nil
	}
	old, nw, err := s.apply(ctx, guildID, userID, text, voice)
	if err != nil {
		return "", err
	}
	s.checkLevelUp(ctx, guildID, userID, old, nw)
	return fmt.Sprintf("✅ Agregado `%d` XP de texto y `%d` XP de voz a <@%s>.\nTotales: `%d` texto, `%d` voz.",
		text, voice, userID, nw.TextXP, nw.VoiceXP), nil
}

// RemoveXP: resta clampeada en 0; bajar de nivel no dispara rewards.
func (s *XPService) RemoveXP(ctx context.Context, guildID, userID string, text, voice int) (string, error) {
	if text < 0 || voice < 0 {
		return "⚠️ Los valores de XP deben ser 0 o mayores.", nil
	}
	if text == 0 && voice == 0 {
		return "⚠️ Indica al menos un valor de XP a quitar.", nil
	}
	_, nw, err := s.apply(ctx, guildID, userID, -text, -voice)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Quitado `%d` XP de texto y `%d` XP de voz a <@%s>.\nTotales: `%d` texto, `%d` voz.",
		text, voice, userID, nw.TextXP, nw.VoiceXP), nil
}

// FixXP: repara el balance de un miembro puntual (comando admin). El clamp de
// lectura ya esconde negativos; esto además persiste la corrección.
func (s *XPService) FixXP(ctx context.Context, guildID, userID string) (string, error) {
	lk := s.keyLock(MemberKey{GuildID: guildID, UserID: userID})
	lk.Lock()
	defer lk.Unlock()

	raw, err := s.xp.Get(ctx, guildID, userID)
	if err != nil {
		return "", err
	}
	if raw.TextXP >= 0 && raw.VoiceXP >= 0 {
		return fmt.Sprintf("ℹ️ El XP de <@%s> ya es válido: `%d` texto, `%d` voz.", userID, raw.TextXP, raw.VoiceXP), nil
	}

	fixed := raw
	fixed.TextXP = max(0, raw.TextXP)
	fixed.VoiceXP = max(0, raw.VoiceXP)
	if err := s.xp.Put(ctx, fixed); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ XP de <@%s> reparado:\nTexto: `%d` → `%d`\nVoz: `%d` → `%d`",
		userID, raw.TextXP, fixed.TextXP, raw.VoiceXP, fixed.VoiceXP), nil
}

// RepairNegatives: barrido de arranque sobre el storage completo.
func (s *XPService) RepairNegatives(ctx context.Context) (int64, error) {
	return s.xp.RepairNegatives(ctx)
}

func (s *XPService) guildSettings(ctx context.Context, guildID string) storage.GuildSettings {
	st, err := s.settings.Get(ctx, guildID)
	if err != nil {
		log.Printf("settings get guild=%s: %v (uso defaults)", guildID, err)
		return storage.DefaultSettings(guildID)
	}
	return st
}

// checkLevelUp corre una vez por transición lógica. Es idempotente: los roles
// se chequean antes de otorgar, así que repetirlo con los mismos niveles no
// duplica grants.
func (s *XPService) checkLevelUp(ctx context.Context, guildID, userID string, old, nw storage.XPBalance) {
	oldText := LevelForPoints(old.TextXP)
	newText := LevelForPoints(nw.TextXP)
	oldVoice := LevelForPoints(old.VoiceXP)
	newVoice := LevelForPoints(nw.VoiceXP)

	textUp := newText > oldText
	voiceUp := newVoice > oldVoice
	if !textUp && !voiceUp {
		return
	}

	s.applyRewards(ctx, guildID, userID, newText, newVoice)

	st := s.guildSettings(ctx, guildID)
	if st.LevelChannelID == "" {
		return
	}
	msg := fmt.Sprintf("**<@%s>** subió de nivel!", userID)
	if textUp {
		msg += fmt.Sprintf("\n`Nivel de texto: %d → %d`", oldText, newText)
	}
	if voiceUp {
		msg += fmt.Sprintf("\n`Nivel de voz: %d → %d`", oldVoice, newVoice)
	}
	// best-effort: el balance ya está persistido, el anuncio puede fallar
	if err := s.notify.Send(st.LevelChannelID, msg); err != nil {
		log.Printf("anuncio level-up guild=%s user=%s: %v", guildID, userID, err)
	}
}

// applyRewards otorga todos los roles cuyas reglas se cumplen en ambos ejes.
// Un grant fallido (rol borrado, sin permisos) se loguea y no frena al resto.
func (s *XPService) applyRewards(ctx context.Context, guildID, userID string, textLevel, voiceLevel int) {
	rules, err := s.rewards.ListForGuild(ctx, guildID)
	if err != nil {
		log.Printf("rewards list guild=%s: %v", guildID, err)
		return
	}
	for _, rule := range rules {
		if !rule.SatisfiedBy(textLevel, voiceLevel) {
			continue
		}
		has, err := s.roles.HasRole(guildID, userID, rule.RoleID)
		if err != nil {
			log.Printf("rol check guild=%s user=%s rol=%s: %v", guildID, userID, rule.RoleID, err)
			continue
		}
		if has {
			continue
		}
		if err := s.roles.GrantRole(guildID, userID, rule.RoleID); err != nil {
			log.Printf("rol grant guild=%s user=%s rol=%s: %v", guildID, userID, rule.RoleID, err)
		}
	}
}
