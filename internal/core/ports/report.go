package ports

import (
	"context"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// StatusCount pairs a deal status with how many deals sit in it.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AgentCount pairs an agent with their approved deal count.
type AgentCount struct {
	AgentID  string `json:"agent_id"`
	Username string `json:"username"`
	Count    int64  `json:"approved_deals"`
}

// LabelCount is a generic grouped count (property type, location).
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ReportSummary is the admin analytics view.
type ReportSummary struct {
	DealsByStatus   []StatusCount `json:"deals_by_status"`
	TopAgents       []AgentCount  `json:"top_agents"`
	PropertyTypes   []LabelCount  `json:"property_types"`
	DealsByLocation []LabelCount  `json:"deals_by_location"`
	TotalEarnings   float64       `json:"total_earnings"`
}

// ReportRepository runs the aggregate queries behind the admin dashboard.
type ReportRepository interface {
	DealsByStatus(ctx context.Context) ([]StatusCount, error)
	// TopAgents returns agents ranked by approved deal count, best first.
	TopAgents(ctx context.Context, limit int) ([]AgentCount, error)
	PropertyTypeCounts(ctx context.Context) ([]LabelCount, error)
	LocationCounts(ctx context.Context) ([]LabelCount, error)
	// TotalEarnings sums the price of all approved deals.
	TotalEarnings(ctx context.Context) (float64, error)
}

// ReportService exposes the composed analytics summary.
type ReportService interface {
	Summary(ctx context.Context, actor *domain.User) (*ReportSummary, error)
}
