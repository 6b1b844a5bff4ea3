package service

import (
	"sync"
	"time"
)

// SpamGuard decide si un mensaje da XP: ventana deslizante por (guild, user).
// Estado solo en memoria; se pierde en restart y no pasa nada, solo throttlea.
type SpamGuard struct {
	mu      sync.Mutex
	history map[MemberKey][]time.Time

	minLen       int
	maxPerWindow int
	window       time.Duration
}

func NewSpamGuard(minLen, maxPerWindow int, window time.Duration) *SpamGuard {
	return &SpamGuard{
		history:      map[MemberKey][]time.Time{},
		minLen:       minLen,
		maxPerWindow: maxPerWindow,
		window:       window,
	}
}

// Admit devuelve true si el mensaje es elegible para XP.
// Un mensaje corto no cuenta ni para la ventana. Un mensaje por encima del
// límite sí se anota: una ráfaga no consigue ventana fresca al terminar.
func (g *SpamGuard) Admit(guildID, userID string, msgLen int, now time.Time) bool {
	if msgLen < g.minLen {
		return false
	}

	k := MemberKey{GuildID: guildID, UserID: userID}
	cutoff := now.Add(-g.window)

	g.mu.Lock()
	defer g.mu.Unlock()

	recent := g.history[k][:0]
	for _, t := range g.history[k] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	ok := len(recent) < g.maxPerWindow
	g.history[k] = append(recent, now)
	return ok
}

// Sweep acota memoria: tira timestamps más viejos que 2×ventana y borra
// claves que quedan vacías. Lo corre el scheduler cada minuto.
func (g *SpamGuard) Sweep(now time.Time) int {
	cutoff := now.Add(-2 * g.window)

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for k, times := range g.history {
		kept := times[:0]
		for _, t := range times {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(g.history, k)
			removed++
			continue
		}
		g.history[k] = kept
	}
	return removed
}
