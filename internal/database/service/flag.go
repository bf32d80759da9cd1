package service

import (
	"context"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"go.uber.org/zap"
)

// FlagLedger persists per-user violation counters.
type FlagLedger interface {
	IncrementFlag(ctx context.Context, guildID, userID uint64, notes string) (*types.UserFlag, error)
	ClearFlags(ctx context.Context, guildID, userID uint64) (int64, error)
}

// AuditRecorder appends moderation decisions to the audit log.
type AuditRecorder interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
}

// FlagService handles moderator-initiated flag changes, keeping the audit
// log in step with the counters.
type FlagService struct {
	flag   FlagLedger
	audit  AuditRecorder
	logger *zap.Logger
}

// NewFlag creates a new flag service.
func NewFlag(flag FlagLedger, audit AuditRecorder, logger *zap.Logger) *FlagService {
	return &FlagService{
		flag:   flag,
		audit:  audit,
		logger: logger.Named("flag_service"),
	}
}

// FlagUser bumps a user's violation counter on a moderator's behalf and
// records the action. Returns the counter state after the increment.
func (s *FlagService) FlagUser(
	ctx context.Context, guildID, userID, moderatorID uint64, reason string,
) (*types.UserFlag, error) {
	flag, err := s.flag.IncrementFlag(ctx, guildID, userID, reason)
	if err != nil {
		return nil, err
	}

	entry := &types.AuditEntry{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Action:      enum.AuditActionFlag,
		Reason:      reason,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		// The counter is already bumped; surface the audit failure so the
		// moderator knows the log is incomplete.
		return flag, err
	}

	s.logger.Info("Moderator flagged user",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID),
		zap.Uint64("moderatorID", moderatorID),
		zap.Int("flagCount", flag.FlagCount))

	return flag, nil
}

// UnflagUser clears a user's violation counter and records the action.
// Returns false without an audit entry when the user had no flags.
func (s *FlagService) UnflagUser(
	ctx context.Context, guildID, userID, moderatorID uint64, reason string,
) (bool, error) {
	deleted, err := s.flag.ClearFlags(ctx, guildID, userID)
	if err != nil {
		return false, err
	}

	if deleted == 0 {
		return false, nil
	}

	entry := &types.AuditEntry{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Action:      enum.AuditActionUnflag,
		Reason:      reason,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		return true, err
	}

	s.logger.Info("Moderator cleared user flags",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID),
		zap.Uint64("moderatorID", moderatorID))

	return true, nil
}
