package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

const PageSize = 10

type Axis string

const (
	AxisText  Axis = "text"
	AxisVoice Axis = "voice"
)

func (a Axis) Valid() bool { return a == AxisText || a == AxisVoice }

func (a Axis) points(b storage.XPBalance) int {
	if a == AxisVoice {
		return b.VoiceXP
	}
	return b.TextXP
}

type LeaderboardEntry struct {
	UserID string
	Points int
	Level  int
}

type LeaderboardService struct {
	xp XPRepo
}

func NewLeaderboardService(xp XPRepo) *LeaderboardService {
	return &LeaderboardService{xp: xp}
}

// Page ordena el set completo del guild por el eje pedido, filtra los ceros y
// devuelve la página (1-based, 10 por página).
func (s *LeaderboardService) Page(ctx context.Context, guildID string, axis Axis, page int) ([]LeaderboardEntry, error) {
	if page < 1 {
		page = 1
	}
	all, err := s.xp.ListGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(all))
	for _, b := range all {
		pts := max(0, axis.points(b))
		if pts == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID: b.UserID,
			Points: pts,
			Level:  LevelForPoints(pts),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })

	start := (page - 1) * PageSize
	if start >= len(entries) {
		return nil, nil
	}
	end := min(start+PageSize, len(entries))
	return entries[start:end], nil
}

// Top arma el texto para /top.
func (s *LeaderboardService) Top(ctx context.Context, guildID string, axis Axis, page int) (string, error) {
	if !axis.Valid() {
		return "⚠️ Eje inválido. Usa `text` o `voice`.", nil
	}
	if page < 1 {
		page = 1
	}
	entries, err := s.Page(ctx, guildID, axis, page)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("ℹ️ No hay usuarios para la página %d.", page), nil
	}

	title := "💬 Texto"
	if axis == AxisVoice {
		title = "🎧 Voz"
	}
	out := fmt.Sprintf("🏆 **Leaderboard %s — página %d**\n", title, page)
	rank := (page-1)*PageSize + 1
	for i, e := range entries {
		out += fmt.Sprintf("`%d.` <@%s> — `Nivel %d` — `%d XP`\n", rank+i, e.UserID, e.Level, e.Points)
	}
	return out, nil
}
