package automod

import (
	"context"

	"github.com/castellan/castellan/internal/database/types"
	"go.uber.org/zap"
)

// RuleSource provides a guild's enabled rules in creation order.
// Implemented by the rule model directly or by a caching wrapper.
type RuleSource interface {
	GetEnabledRules(ctx context.Context, guildID uint64) ([]*types.Rule, error)
}

// Evaluator matches message content against a guild's rule set.
type Evaluator struct {
	source  RuleSource
	matcher *Matcher
	logger  *zap.Logger
}

// NewEvaluator creates a new evaluator reading rules from the given source.
func NewEvaluator(source RuleSource, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		source:  source,
		matcher: NewMatcher(logger),
		logger:  logger.Named("evaluator"),
	}
}

// Evaluate returns the first enabled rule that matches the content, in
// ascending rule ID order, or nil when nothing matches. Evaluation never
// mutates state.
func (e *Evaluator) Evaluate(ctx context.Context, guildID uint64, content string) (*types.Rule, error) {
	rules, err := e.source.GetEnabledRules(ctx, guildID)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if e.matcher.Matches(rule, content) {
			return rule, nil
		}
	}

	return nil, nil //nolint:nilnil // no match is a normal outcome
}
