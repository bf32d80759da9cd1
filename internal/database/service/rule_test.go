package service_test

import (
	"testing"

	"github.com/castellan/castellan/internal/database/service"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Validation rejects bad rules before any database access, so these run
// against a service with no backing model.
func TestCreateRuleValidation(t *testing.T) {
	t.Parallel()

	s := service.NewRule(nil, zap.NewNop())

	tests := []struct {
		name     string
		ruleType enum.RuleType
		pattern  string
		action   enum.RuleAction
		wantErr  error
	}{
		{
			name:     "unknown type",
			ruleType: enum.RuleTypeUnknown,
			pattern:  "x",
			action:   enum.RuleActionDelete,
			wantErr:  service.ErrInvalidRuleType,
		},
		{
			name:     "unknown action",
			ruleType: enum.RuleTypeKeyword,
			pattern:  "x",
			action:   enum.RuleActionUnknown,
			wantErr:  service.ErrInvalidRuleAction,
		},
		{
			name:     "keyword needs pattern",
			ruleType: enum.RuleTypeKeyword,
			pattern:  "   ",
			action:   enum.RuleActionDelete,
			wantErr:  service.ErrEmptyPattern,
		},
		{
			name:     "regex needs pattern",
			ruleType: enum.RuleTypeRegex,
			pattern:  "",
			action:   enum.RuleActionFlag,
			wantErr:  service.ErrEmptyPattern,
		},
		{
			name:     "regex must compile",
			ruleType: enum.RuleTypeRegex,
			pattern:  "([unclosed",
			action:   enum.RuleActionFlag,
			wantErr:  service.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := s.CreateRule(t.Context(), 1, tt.ruleType, tt.pattern, tt.action)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, rule)
		})
	}
}
