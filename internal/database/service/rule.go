package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/castellan/castellan/internal/database/models"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"go.uber.org/zap"
)

var (
	// ErrRuleNotFound is returned when a rule does not exist in the guild.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrInvalidRuleType is returned when the rule type is not recognized.
	ErrInvalidRuleType = errors.New("invalid rule type")
	// ErrInvalidRuleAction is returned when the rule action is not recognized.
	ErrInvalidRuleAction = errors.New("invalid rule action")
	// ErrEmptyPattern is returned when a keyword or regex rule has no pattern.
	ErrEmptyPattern = errors.New("rule pattern cannot be empty")
	// ErrInvalidPattern is returned when a regex pattern does not compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")
)

// Invalidator drops cached rule sets after rule mutations.
type Invalidator interface {
	Invalidate(ctx context.Context, guildID uint64) error
}

// RuleService handles rule validation and mutation.
type RuleService struct {
	rule        *models.RuleModel
	invalidator Invalidator
	logger      *zap.Logger
}

// NewRule creates a new rule service.
func NewRule(rule *models.RuleModel, logger *zap.Logger) *RuleService {
	return &RuleService{
		rule:   rule,
		logger: logger.Named("rule_service"),
	}
}

// SetInvalidator wires in the rule cache. Mutations made before this is
// called are only visible after the cached rule set expires.
func (s *RuleService) SetInvalidator(invalidator Invalidator) {
	s.invalidator = invalidator
}

// CreateRule validates and stores a new rule, returning it with its
// assigned ID. Regex patterns that do not compile are rejected here so the
// evaluator never sees them.
func (s *RuleService) CreateRule(
	ctx context.Context, guildID uint64, ruleType enum.RuleType, pattern string, action enum.RuleAction,
) (*types.Rule, error) {
	if ruleType == enum.RuleTypeUnknown || !ruleType.IsARuleType() {
		return nil, ErrInvalidRuleType
	}

	if action == enum.RuleActionUnknown || !action.IsARuleAction() {
		return nil, ErrInvalidRuleAction
	}

	switch ruleType {
	case enum.RuleTypeKeyword, enum.RuleTypeRegex:
		if strings.TrimSpace(pattern) == "" {
			return nil, ErrEmptyPattern
		}
	case enum.RuleTypeSpam, enum.RuleTypeCaps, enum.RuleTypeUnknown:
		// Pattern is unused by these matchers.
	}

	if ruleType == enum.RuleTypeRegex {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
	}

	rule := &types.Rule{
		GuildID: guildID,
		Type:    ruleType,
		Pattern: pattern,
		Action:  action,
		Enabled: true,
	}

	if err := s.rule.CreateRule(ctx, rule); err != nil {
		return nil, err
	}

	s.invalidate(ctx, guildID)

	return rule, nil
}

// SetRuleEnabled toggles a rule. Returns ErrRuleNotFound when the rule does
// not exist in the guild.
func (s *RuleService) SetRuleEnabled(ctx context.Context, guildID uint64, ruleID int64, enabled bool) error {
	affected, err := s.rule.SetRuleEnabled(ctx, guildID, ruleID, enabled)
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrRuleNotFound
	}

	s.invalidate(ctx, guildID)

	return nil
}

// DeleteRule removes a rule. Returns ErrRuleNotFound when the rule does not
// exist in the guild.
func (s *RuleService) DeleteRule(ctx context.Context, guildID uint64, ruleID int64) error {
	affected, err := s.rule.DeleteRule(ctx, guildID, ruleID)
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrRuleNotFound
	}

	s.invalidate(ctx, guildID)

	return nil
}

// GetRules lists all of a guild's rules in creation order.
func (s *RuleService) GetRules(ctx context.Context, guildID uint64) ([]*types.Rule, error) {
	return s.rule.GetRules(ctx, guildID)
}

func (s *RuleService) invalidate(ctx context.Context, guildID uint64) {
	if s.invalidator == nil {
		return
	}

	if err := s.invalidator.Invalidate(ctx, guildID); err != nil {
		// A stale cache self-heals at TTL expiry, so a failed invalidation
		// is not worth failing the mutation over.
		s.logger.Warn("Failed to invalidate rule cache",
			zap.Uint64("guildID", guildID),
			zap.Error(err))
	}
}
