package enum

// AuditAction identifies the moderation decision recorded by an audit entry.
//
//go:generate go tool enumer -type=AuditAction -trimprefix=AuditAction
type AuditAction int

const (
	// AuditActionUnknown marks entries persisted before the closed set existed.
	AuditActionUnknown AuditAction = iota

	// AuditActionDelete records a message deletion.
	AuditActionDelete
	// AuditActionFlag records a flag increment, automatic or manual.
	AuditActionFlag
	// AuditActionWarn records a warning sent to a message author.
	AuditActionWarn
	// AuditActionUnflag records a manual clearing of a user's flags.
	AuditActionUnflag
)
