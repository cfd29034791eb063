package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

const topAgentsLimit = 5

// ReportService composes the admin analytics summary from the aggregate
// queries in the report repository.
type ReportService struct {
	reports ports.ReportRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, users ports.UserRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, users: users, log: log}
}

func (s *ReportService) Summary(ctx context.Context, actor *domain.User) (*ports.ReportSummary, error) {
	if err := domain.Authorize(actor.Role, domain.ActionViewReports); err != nil {
		return nil, err
	}

	byStatus, err := s.reports.DealsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	topAgents, err := s.reports.TopAgents(ctx, topAgentsLimit)
	if err != nil {
		return nil, err
	}
	s.resolveAgentNames(ctx, topAgents)

	propertyTypes, err := s.reports.PropertyTypeCounts(ctx)
	if err != nil {
		return nil, err
	}
	byLocation, err := s.reports.LocationCounts(ctx)
	if err != nil {
		return nil, err
	}
	earnings, err := s.reports.TotalEarnings(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.ReportSummary{
		DealsByStatus:   byStatus,
		TopAgents:       topAgents,
		PropertyTypes:   propertyTypes,
		DealsByLocation: byLocation,
		TotalEarnings:   earnings,
	}, nil
}

// resolveAgentNames fills Username for each ranked agent. A missing user is
// not fatal; the entry keeps its bare agent id.
func (s *ReportService) resolveAgentNames(ctx context.Context, agents []ports.AgentCount) {
	for i := range agents {
		user, err := s.users.FindByID(ctx, agents[i].AgentID)
		if err != nil {
			s.log.Warn().Str("agent_id", agents[i].AgentID).Msg("could not resolve agent username for report")
			continue
		}
		agents[i].Username = user.Username
	}
}
