package automod_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/castellan/castellan/internal/automod"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMessage() *automod.Message {
	return &automod.Message{
		GuildID:   100,
		ChannelID: 200,
		UserID:    300,
		MessageID: 400,
		Content:   "offending content",
	}
}

func testGuildConfig() *types.GuildConfig {
	return &types.GuildConfig{
		GuildID:        100,
		ModChannelID:   900,
		AutoModEnabled: true,
		FlagThreshold:  3,
	}
}

func TestDispatchDelete(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionDelete}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	require.Len(t, notifier.deleted, 1)
	assert.Equal(t, deletedMessage{200, 400}, notifier.deleted[0])

	// Deletes never touch the flag ledger.
	assert.Equal(t, 0, flags.count(100, 300))

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, enum.AuditActionDelete, entries[0].Action)
	assert.Equal(t, "matched rule: keyword - offending", entries[0].Reason)
	assert.Equal(t, "offending content", entries[0].MessageSnapshot)
	assert.Equal(t, uint64(400), entries[0].MessageID)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, enum.RuleActionDelete, notifier.alerts[0].Action)
}

func TestDispatchFlagBelowThreshold(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionFlag}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	assert.Equal(t, 1, flags.count(100, 300))
	assert.Empty(t, notifier.escalations)
	assert.Empty(t, notifier.deleted)

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, enum.AuditActionFlag, entries[0].Action)
	assert.Equal(t, "offending content", entries[0].MessageSnapshot)
}

func TestDispatchFlagEscalatesAtThreshold(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionFlag}
	cfg := testGuildConfig()

	for range 3 {
		d.Dispatch(t.Context(), testMessage(), rule, cfg)
	}

	assert.Equal(t, 3, flags.count(100, 300))

	// Escalation fires only on the increment that reached the threshold.
	require.Len(t, notifier.escalations, 1)
	assert.Equal(t, 3, notifier.escalations[0].FlagCount)
	assert.Equal(t, 3, notifier.escalations[0].Threshold)
}

func TestDispatchDeleteDoesNotEscalate(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	flagRule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionFlag}
	deleteRule := &types.Rule{ID: 2, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionDelete}
	cfg := testGuildConfig()

	for range 3 {
		d.Dispatch(t.Context(), testMessage(), flagRule, cfg)
	}

	require.Len(t, notifier.escalations, 1)

	// A later match that does not increment must not re-fire the escalation,
	// even though the stored count still sits at the threshold.
	d.Dispatch(t.Context(), testMessage(), deleteRule, cfg)
	assert.Len(t, notifier.escalations, 1)

	// A further increment past the threshold fires again.
	d.Dispatch(t.Context(), testMessage(), flagRule, cfg)
	assert.Len(t, notifier.escalations, 2)
}

func TestDispatchDeleteAndFlagOrder(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeSpam, Action: enum.RuleActionDeleteAndFlag}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	require.Len(t, notifier.deleted, 1)
	assert.Equal(t, 1, flags.count(100, 300))

	// The removal is recorded before the flag.
	entries := audit.all()
	require.Len(t, entries, 2)
	assert.Equal(t, enum.AuditActionDelete, entries[0].Action)
	assert.Equal(t, enum.AuditActionFlag, entries[1].Action)

	// One alert for the whole dispatch, not one per sub-action.
	assert.Len(t, notifier.alerts, 1)
}

func TestDispatchWarn(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeCaps, Action: enum.RuleActionWarn}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	require.Len(t, notifier.dms, 1)
	assert.True(t, strings.Contains(notifier.dms[0], "matched rule: caps"))

	// Warnings never increment the ledger.
	assert.Equal(t, 0, flags.count(100, 300))

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, enum.AuditActionWarn, entries[0].Action)
	assert.Equal(t, "offending content", entries[0].MessageSnapshot)
}

func TestDispatchWarnAuditsWhenDMFails(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{dmErr: errors.New("user blocks DMs")}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeCaps, Action: enum.RuleActionWarn}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, enum.AuditActionWarn, entries[0].Action)
}

func TestDispatchUnknownActionIsNoOp(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "x", Action: enum.RuleActionUnknown}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	assert.Empty(t, notifier.deleted)
	assert.Empty(t, notifier.dms)
	assert.Empty(t, notifier.alerts)
	assert.Empty(t, audit.all())
	assert.Equal(t, 0, flags.count(100, 300))
}

func TestDispatchNoModChannel(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	cfg := testGuildConfig()
	cfg.ModChannelID = 0
	cfg.FlagThreshold = 1

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionFlag}
	d.Dispatch(t.Context(), testMessage(), rule, cfg)

	// The flag still lands; only the notifications are skipped.
	assert.Equal(t, 1, flags.count(100, 300))
	assert.Empty(t, notifier.alerts)
	assert.Empty(t, notifier.escalations)
}

func TestDispatchDeleteFailureStillAudits(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{deleteErr: errors.New("message already gone")}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "offending", Action: enum.RuleActionDelete}
	d.Dispatch(t.Context(), testMessage(), rule, testGuildConfig())

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, enum.AuditActionDelete, entries[0].Action)
}

func TestDispatchExcerptCapped(t *testing.T) {
	t.Parallel()

	flags := newFakeFlagStore()
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	d := automod.NewDispatcher(flags, audit, notifier, zap.NewNop())

	msg := testMessage()
	msg.Content = strings.Repeat("a", 2000)

	rule := &types.Rule{ID: 1, Type: enum.RuleTypeSpam, Action: enum.RuleActionDelete}
	d.Dispatch(t.Context(), msg, rule, testGuildConfig())

	require.Len(t, notifier.alerts, 1)
	assert.LessOrEqual(t, len(notifier.alerts[0].Excerpt), 1024)

	entries := audit.all()
	require.Len(t, entries, 1)
	assert.LessOrEqual(t, len(entries[0].MessageSnapshot), 1024)
}
