package automod

import (
	"testing"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsSpam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"repeated character run", "aaaaaaa", true},
		{"exactly six repeats", "noooooo!", true},
		{"five repeats is not spam", "nooooo", false},
		{"repeated token", "buy buy buy buy buy now", true},
		{"repeated token mixed case", "BUY buy Buy bUy buY now", true},
		{"four token repeats is not spam", "buy buy buy buy now", false},
		{"short tokens ignored", "ha ha ha ha ha ha ha", false},
		{"normal sentence", "a normal short sentence", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isSpam(tt.content))
		})
	}
}

func TestIsCapsSpam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"too short", "hi", false},
		{"short shouting still too short", "STOP IT", false},
		{"all caps", "THIS IS YELLING", true},
		{"title case", "This Is Normal Text", false},
		{"no letters", "1234567890 !!!", false},
		{"mostly caps", "HELLO WORLD ok", true},
		{"lowercase sentence", "this is a calm sentence", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isCapsSpam(tt.content))
		})
	}
}

func TestMatcherMatches(t *testing.T) {
	t.Parallel()

	m := NewMatcher(zap.NewNop())

	tests := []struct {
		name    string
		rule    *types.Rule
		content string
		want    bool
	}{
		{
			name:    "keyword case-insensitive",
			rule:    &types.Rule{Type: enum.RuleTypeKeyword, Pattern: "Badword"},
			content: "this contains a BADWORD here",
			want:    true,
		},
		{
			name:    "keyword absent",
			rule:    &types.Rule{Type: enum.RuleTypeKeyword, Pattern: "badword"},
			content: "a clean message",
			want:    false,
		},
		{
			name:    "regex case-insensitive",
			rule:    &types.Rule{Type: enum.RuleTypeRegex, Pattern: `free\s+money`},
			content: "get FREE   Money now",
			want:    true,
		},
		{
			name:    "invalid regex is a non-match",
			rule:    &types.Rule{Type: enum.RuleTypeRegex, Pattern: "([unclosed"},
			content: "([unclosed",
			want:    false,
		},
		{
			name:    "spam rule ignores pattern",
			rule:    &types.Rule{Type: enum.RuleTypeSpam, Pattern: ""},
			content: "zzzzzzzzz",
			want:    true,
		},
		{
			name:    "caps rule",
			rule:    &types.Rule{Type: enum.RuleTypeCaps},
			content: "WHY ARE WE SHOUTING",
			want:    true,
		},
		{
			name:    "unknown type is a non-match",
			rule:    &types.Rule{Type: enum.RuleTypeUnknown, Pattern: "anything"},
			content: "anything",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Matches(tt.rule, tt.content))
		})
	}
}

func TestMatcherCachesInvalidPattern(t *testing.T) {
	t.Parallel()

	m := NewMatcher(zap.NewNop())
	rule := &types.Rule{Type: enum.RuleTypeRegex, Pattern: "(bad"}

	// Both the compiling call and the cached call must be non-matches.
	assert.False(t, m.Matches(rule, "(bad"))
	assert.False(t, m.Matches(rule, "(bad"))
}
