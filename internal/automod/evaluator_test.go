package automod_test

import (
	"errors"
	"testing"

	"github.com/castellan/castellan/internal/automod"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluateEmptyRuleSet(t *testing.T) {
	t.Parallel()

	evaluator := automod.NewEvaluator(&fakeRuleSource{}, zap.NewNop())

	rule, err := evaluator.Evaluate(t.Context(), 1, "any message at all")
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	t.Parallel()

	source := &fakeRuleSource{rules: []*types.Rule{
		{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "alpha", Action: enum.RuleActionDelete},
		{ID: 2, Type: enum.RuleTypeKeyword, Pattern: "beta", Action: enum.RuleActionFlag},
		{ID: 3, Type: enum.RuleTypeKeyword, Pattern: "beta", Action: enum.RuleActionWarn},
	}}
	evaluator := automod.NewEvaluator(source, zap.NewNop())

	// Both rule 2 and rule 3 match; the lower ID wins.
	rule, err := evaluator.Evaluate(t.Context(), 1, "some beta content")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, int64(2), rule.ID)
}

func TestEvaluateNoMatch(t *testing.T) {
	t.Parallel()

	source := &fakeRuleSource{rules: []*types.Rule{
		{ID: 1, Type: enum.RuleTypeKeyword, Pattern: "alpha"},
	}}
	evaluator := automod.NewEvaluator(source, zap.NewNop())

	rule, err := evaluator.Evaluate(t.Context(), 1, "a clean message")
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestEvaluateInvalidRegexSkipped(t *testing.T) {
	t.Parallel()

	source := &fakeRuleSource{rules: []*types.Rule{
		{ID: 1, Type: enum.RuleTypeRegex, Pattern: "([bad"},
		{ID: 2, Type: enum.RuleTypeKeyword, Pattern: "target"},
	}}
	evaluator := automod.NewEvaluator(source, zap.NewNop())

	// The broken rule must not abort evaluation of the rest.
	rule, err := evaluator.Evaluate(t.Context(), 1, "hit the target")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, int64(2), rule.ID)
}

func TestEvaluateSourceError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("source unavailable")
	evaluator := automod.NewEvaluator(&fakeRuleSource{err: wantErr}, zap.NewNop())

	rule, err := evaluator.Evaluate(t.Context(), 1, "anything")
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, rule)
}
