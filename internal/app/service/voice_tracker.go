package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

// VoiceTracker lleva las sesiones de voz abiertas (miembro → inicio) y cada
// tick acredita XP plano a las sesiones que siguen conectadas. Sin prorrateo:
// un tick parcial al apagar no se paga.
type VoiceTracker struct {
	xp       *XPService
	settings SettingsRepo
	presence VoicePresence

	mu       sync.Mutex
	sessions map[MemberKey]time.Time

	closed atomic.Bool
}

func NewVoiceTracker(xp *XPService, settings SettingsRepo, presence VoicePresence) *VoiceTracker {
	return &VoiceTracker{
		xp:       xp,
		settings: settings,
		presence: presence,
		sessions: map[MemberKey]time.Time{},
	}
}

// HandleUpdate procesa un VoiceStateUpdate ya reducido a (guild, user, canal).
// Canal vacío = salió de voz en ese guild. Moverse de canal dentro del mismo
// guild no reinicia la sesión.
func (t *VoiceTracker) HandleUpdate(guildID, userID, channelID string) {
	k := MemberKey{GuildID: guildID, UserID: userID}

	t.mu.Lock()
	defer t.mu.Unlock()

	if channelID == "" {
		delete(t.sessions, k)
		return
	}
	if _, ok := t.sessions[k]; !ok {
		t.sessions[k] = time.Now()
	}
}

// Sessions devuelve cuántas sesiones hay abiertas (para logs).
func (t *VoiceTracker) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Close marca shutdown: los ticks que lleguen después son no-op.
func (t *VoiceTracker) Close() { t.closed.Store(true) }

// Tick: una pasada de acreditación. Verifica que cada sesión siga en voz
// (si no, la descarta sin pagar), acredita voice_xp_per_tick del guild y corre
// el chequeo de level-up vía el ledger.
func (t *VoiceTracker) Tick(ctx context.Context) {
	if t.closed.Load() {
		return
	}

	// snapshot para no sostener el lock durante I/O
	t.mu.Lock()
	open := make(map[MemberKey]time.Time, len(t.sessions))
	for k, v := range t.sessions {
		open[k] = v
	}
	t.mu.Unlock()

	if len(open) == 0 {
		return
	}

	seen := map[string]struct{}{}
	var guildIDs []string
	for k := range open {
		if _, ok := seen[k.GuildID]; !ok {
			seen[k.GuildID] = struct{}{}
			guildIDs = append(guildIDs, k.GuildID)
		}
	}

	settings, err := t.settings.GetMany(ctx, guildIDs)
	if err != nil {
		log.Printf("voice tick: settings batch: %v (uso defaults)", err)
		settings = nil
	}

	var stale []MemberKey
	for k := range open {
		if t.closed.Load() {
			return
		}
		if !t.presence.InVoice(k.GuildID, k.UserID) {
			stale = append(stale, k)
			continue
		}

		st, ok := settings[k.GuildID]
		if !ok {
			st = storage.DefaultSettings(k.GuildID)
		}
		if err := t.xp.AwardVoiceXP(ctx, k.GuildID, k.UserID, st.VoiceXPPerTick); err != nil {
			log.Printf("voice tick guild=%s user=%s: %v", k.GuildID, k.UserID, err)
		}
	}

	if len(stale) > 0 {
		t.mu.Lock()
		for _, k := range stale {
			delete(t.sessions, k)
		}
		t.mu.Unlock()
	}
}
