package automod_test

import (
	"context"
	"sync"
	"time"

	"github.com/castellan/castellan/internal/automod"
	"github.com/castellan/castellan/internal/database/types"
)

type fakeRuleSource struct {
	rules []*types.Rule
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeRuleSource) GetEnabledRules(context.Context, uint64) ([]*types.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	return f.rules, f.err
}

type flagKey struct {
	guildID uint64
	userID  uint64
}

type fakeFlagStore struct {
	counts map[flagKey]int
	notes  map[flagKey]string
	err    error
	mu     sync.Mutex
}

func newFakeFlagStore() *fakeFlagStore {
	return &fakeFlagStore{
		counts: make(map[flagKey]int),
		notes:  make(map[flagKey]string),
	}
}

func (f *fakeFlagStore) IncrementFlag(_ context.Context, guildID, userID uint64, notes string) (*types.UserFlag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	key := flagKey{guildID, userID}
	f.counts[key]++

	if notes != "" {
		f.notes[key] = notes
	}

	return &types.UserFlag{
		GuildID:       guildID,
		UserID:        userID,
		FlagCount:     f.counts[key],
		LastFlaggedAt: time.Now(),
		Notes:         f.notes[key],
	}, nil
}

func (f *fakeFlagStore) count(guildID, userID uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.counts[flagKey{guildID, userID}]
}

type fakeAuditStore struct {
	entries []*types.AuditEntry
	err     error
	mu      sync.Mutex
}

func (f *fakeAuditStore) Record(_ context.Context, entry *types.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	entry.ID = int64(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)

	return nil
}

func (f *fakeAuditStore) all() []*types.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*types.AuditEntry(nil), f.entries...)
}

type deletedMessage struct {
	channelID uint64
	messageID uint64
}

type fakeNotifier struct {
	deleted     []deletedMessage
	dms         []string
	alerts      []*automod.ModAlert
	escalations []*automod.Escalation

	deleteErr error
	dmErr     error
	alertErr  error

	mu sync.Mutex
}

func (f *fakeNotifier) DeleteMessage(_ context.Context, channelID, messageID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deleted = append(f.deleted, deletedMessage{channelID, messageID})

	return nil
}

func (f *fakeNotifier) SendDirectMessage(_ context.Context, _ uint64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dmErr != nil {
		return f.dmErr
	}

	f.dms = append(f.dms, content)

	return nil
}

func (f *fakeNotifier) SendModAlert(_ context.Context, _ uint64, alert *automod.ModAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.alertErr != nil {
		return f.alertErr
	}

	f.alerts = append(f.alerts, alert)

	return nil
}

func (f *fakeNotifier) SendEscalation(_ context.Context, _ uint64, escalation *automod.Escalation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.escalations = append(f.escalations, escalation)

	return nil
}

type fakeGuildSource struct {
	cfg       *types.GuildConfig
	monitored map[uint64]bool
	cfgErr    error
	monErr    error
}

func (f *fakeGuildSource) GetGuild(context.Context, uint64) (*types.GuildConfig, error) {
	if f.cfgErr != nil {
		return nil, f.cfgErr
	}

	return f.cfg, nil
}

func (f *fakeGuildSource) IsChannelMonitored(_ context.Context, _, channelID uint64) (bool, error) {
	if f.monErr != nil {
		return false, f.monErr
	}

	return f.monitored[channelID], nil
}
