package service

import (
	"context"
	"sync"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

// Fakes en memoria para los ports; suficiente para probar el core sin DB.

type fakeXPRepo struct {
	mu     sync.Mutex
	rows   map[MemberKey]storage.XPBalance
	getErr error
	putErr error
}

func newFakeXPRepo() *fakeXPRepo {
	return &fakeXPRepo{rows: map[MemberKey]storage.XPBalance{}}
}

func (f *fakeXPRepo) Get(_ context.Context, guildID, userID string) (storage.XPBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return storage.XPBalance{}, f.getErr
	}
	b, ok := f.rows[MemberKey{GuildID: guildID, UserID: userID}]
	if !ok {
		return storage.XPBalance{GuildID: guildID, UserID: userID}, nil
	}
	return b, nil
}

func (f *fakeXPRepo) Put(_ context.Context, b storage.XPBalance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.rows[MemberKey{GuildID: b.GuildID, UserID: b.UserID}] = b
	return nil
}

func (f *fakeXPRepo) ListGuild(_ context.Context, guildID string) ([]storage.XPBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.XPBalance
	for k, b := range f.rows {
		if k.GuildID == guildID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeXPRepo) RepairNegatives(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, b := range f.rows {
		if b.TextXP < 0 || b.VoiceXP < 0 {
			b.TextXP = max(0, b.TextXP)
			b.VoiceXP = max(0, b.VoiceXP)
			f.rows[k] = b
			n++
		}
	}
	return n, nil
}

func (f *fakeXPRepo) seed(guildID, userID string, text, voice int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := MemberKey{GuildID: guildID, UserID: userID}
	f.rows[k] = storage.XPBalance{GuildID: guildID, UserID: userID, TextXP: text, VoiceXP: voice}
}

type fakeSettingsRepo struct {
	mu   sync.Mutex
	rows map[string]storage.GuildSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[string]storage.GuildSettings{}}
}

func (f *fakeSettingsRepo) Get(_ context.Context, guildID string) (storage.GuildSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.rows[guildID]; ok {
		return s, nil
	}
	s := storage.DefaultSettings(guildID)
	f.rows[guildID] = s
	return s, nil
}

func (f *fakeSettingsRepo) GetMany(ctx context.Context, guildIDs []string) (map[string]storage.GuildSettings, error) {
	out := map[string]storage.GuildSettings{}
	for _, id := range guildIDs {
		s, _ := f.Get(ctx, id)
		out[id] = s
	}
	return out, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s storage.GuildSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[s.GuildID] = s
	return nil
}

type fakeRewardsRepo struct {
	mu    sync.Mutex
	rules []storage.RewardRule
}

func (f *fakeRewardsRepo) ListForGuild(_ context.Context, guildID string) ([]storage.RewardRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.RewardRule
	for _, r := range f.rules {
		if r.GuildID == guildID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRewardsRepo) Upsert(_ context.Context, rr storage.RewardRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rules {
		if r.GuildID == rr.GuildID && r.RoleID == rr.RoleID {
			f.rules[i] = rr
			return nil
		}
	}
	f.rules = append(f.rules, rr)
	return nil
}

func (f *fakeRewardsRepo) Delete(_ context.Context, guildID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rules {
		if r.GuildID == guildID && r.RoleID == roleID {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeRoles struct {
	mu     sync.Mutex
	has    map[string]bool // "guild/user/role"
	grants []string
}

func newFakeRoles() *fakeRoles { return &fakeRoles{has: map[string]bool{}} }

func roleKey(guildID, userID, roleID string) string { return guildID + "/" + userID + "/" + roleID }

func (f *fakeRoles) HasRole(guildID, userID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.has[roleKey(guildID, userID, roleID)], nil
}

func (f *fakeRoles) GrantRole(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.has[roleKey(guildID, userID, roleID)] = true
	f.grants = append(f.grants, roleKey(guildID, userID, roleID))
	return nil
}

type fakeNotify struct {
	mu   sync.Mutex
	sent []string // "channel|content"
}

func (f *fakeNotify) Send(channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, channelID+"|"+content)
	return nil
}

func (f *fakeNotify) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakePresence struct {
	mu      sync.Mutex
	inVoice map[MemberKey]bool
}

func newFakePresence() *fakePresence { return &fakePresence{inVoice: map[MemberKey]bool{}} }

func (f *fakePresence) set(guildID, userID string, in bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inVoice[MemberKey{GuildID: guildID, UserID: userID}] = in
}

func (f *fakePresence) InVoice(guildID, userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inVoice[MemberKey{GuildID: guildID, UserID: userID}]
}

func newTestXPService(xp *fakeXPRepo) (*XPService, *fakeSettingsRepo, *fakeRewardsRepo, *fakeRoles, *fakeNotify) {
	settings := newFakeSettingsRepo()
	rewards := &fakeRewardsRepo{}
	roles := newFakeRoles()
	notify := &fakeNotify{}
	return NewXPService(xp, settings, rewards, roles, notify), settings, rewards, roles, notify
}
