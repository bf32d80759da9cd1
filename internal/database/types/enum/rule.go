package enum

// RuleType identifies the matcher applied when evaluating a rule
// against message content.
//
//go:generate go tool enumer -type=RuleType -trimprefix=RuleType
type RuleType int

const (
	// RuleTypeUnknown marks rule types persisted before the closed set
	// existed. Evaluation treats it as a non-match.
	RuleTypeUnknown RuleType = iota

	// RuleTypeKeyword matches a case-insensitive substring of the message.
	RuleTypeKeyword
	// RuleTypeRegex matches a case-insensitive regular expression.
	RuleTypeRegex
	// RuleTypeSpam matches repeated characters or repeated tokens.
	RuleTypeSpam
	// RuleTypeCaps matches messages written mostly in uppercase.
	RuleTypeCaps
)

// RuleAction identifies what the dispatcher does when a rule matches.
//
//go:generate go tool enumer -type=RuleAction -trimprefix=RuleAction
type RuleAction int

const (
	// RuleActionUnknown marks actions persisted before the closed set
	// existed. Dispatch logs it and performs no operation.
	RuleActionUnknown RuleAction = iota

	// RuleActionDelete removes the offending message.
	RuleActionDelete
	// RuleActionFlag increments the author's flag count.
	RuleActionFlag
	// RuleActionDeleteAndFlag removes the message, then flags the author.
	RuleActionDeleteAndFlag
	// RuleActionWarn sends a best-effort warning DM to the author.
	RuleActionWarn
)
