package automod

import (
	"regexp"
	"strings"
	"sync"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"go.uber.org/zap"
)

// Matcher evaluates individual rules against message content. Compiled
// regex patterns are cached per pattern string; a pattern that fails to
// compile is cached as a permanent non-match.
type Matcher struct {
	regexes sync.Map // pattern -> *regexp.Regexp, nil for invalid patterns
	logger  *zap.Logger
}

// NewMatcher creates a new matcher instance.
func NewMatcher(logger *zap.Logger) *Matcher {
	return &Matcher{logger: logger.Named("matcher")}
}

// Matches reports whether a rule matches the given message content.
// Invalid rule configuration never aborts evaluation; it is a non-match.
func (m *Matcher) Matches(rule *types.Rule, content string) bool {
	switch rule.Type {
	case enum.RuleTypeKeyword:
		return strings.Contains(strings.ToLower(content), strings.ToLower(rule.Pattern))
	case enum.RuleTypeRegex:
		re := m.compiled(rule.Pattern)
		return re != nil && re.MatchString(content)
	case enum.RuleTypeSpam:
		return isSpam(content)
	case enum.RuleTypeCaps:
		return isCapsSpam(content)
	case enum.RuleTypeUnknown:
	}

	m.logger.Warn("Rule has unknown type, treating as non-match",
		zap.Int64("ruleID", rule.ID),
		zap.Uint64("guildID", rule.GuildID))

	return false
}

// compiled returns the cached case-insensitive regex for a pattern, or nil
// when the pattern does not compile.
func (m *Matcher) compiled(pattern string) *regexp.Regexp {
	if v, ok := m.regexes.Load(pattern); ok {
		re, _ := v.(*regexp.Regexp)
		return re
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		m.logger.Warn("Invalid regex pattern, treating as non-match",
			zap.String("pattern", pattern),
			zap.Error(err))

		re = nil
	}

	m.regexes.Store(pattern, re)

	return re
}

// isSpam reports repetition spam: any character repeated six or more times
// in a row, or any token longer than two characters appearing five or more
// times regardless of case.
func isSpam(content string) bool {
	var (
		prev  rune
		run   int
		first = true
	)

	for _, r := range content {
		if !first && r == prev {
			run++
		} else {
			run = 1
		}

		if run >= 6 {
			return true
		}

		prev = r
		first = false
	}

	counts := make(map[string]int)

	for _, token := range strings.Fields(strings.ToLower(content)) {
		if len(token) <= 2 {
			continue
		}

		counts[token]++
		if counts[token] >= 5 {
			return true
		}
	}

	return false
}

// isCapsSpam reports shouting: messages of at least ten characters where
// more than 70% of the ASCII letters are uppercase. Messages without
// letters never match.
func isCapsSpam(content string) bool {
	if len(content) < 10 {
		return false
	}

	var letters, upper int

	for _, r := range content {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}

	if letters == 0 {
		return false
	}

	return float64(upper)/float64(letters) > 0.7
}
