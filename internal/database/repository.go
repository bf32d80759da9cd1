package database

import (
	"github.com/castellan/castellan/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	guild *models.GuildModel
	rule  *models.RuleModel
	flag  *models.FlagModel
	audit *models.AuditModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		guild: models.NewGuild(db, logger),
		rule:  models.NewRule(db, logger),
		flag:  models.NewFlag(db, logger),
		audit: models.NewAudit(db, logger),
	}
}

// Guild returns the guild model repository.
func (r *Repository) Guild() *models.GuildModel {
	return r.guild
}

// Rule returns the rule model repository.
func (r *Repository) Rule() *models.RuleModel {
	return r.rule
}

// Flag returns the flag model repository.
func (r *Repository) Flag() *models.FlagModel {
	return r.flag
}

// Audit returns the audit model repository.
func (r *Repository) Audit() *models.AuditModel {
	return r.audit
}
