package database

import (
	"github.com/castellan/castellan/internal/database/service"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	rule *service.RuleService
	flag *service.FlagService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, logger *zap.Logger) *Service {
	return &Service{
		rule: service.NewRule(repository.Rule(), logger),
		flag: service.NewFlag(repository.Flag(), repository.Audit(), logger),
	}
}

// Rule returns the rule service.
func (s *Service) Rule() *service.RuleService {
	return s.rule
}

// Flag returns the flag service.
func (s *Service) Flag() *service.FlagService {
	return s.flag
}
