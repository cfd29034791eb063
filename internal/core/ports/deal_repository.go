package ports

import (
	"context"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// ListDealsFilter carries all query parameters for listing deals.
// AgentID is always enforced by the service layer when the actor is an agent.
type ListDealsFilter struct {
	AgentID         string // empty = no filter (admin); non-empty = scoped to agent
	Status          string // optional: filter by deal status
	PropertyType    string // optional
	TransactionType string // optional
	Location        string // optional
	MinPrice        float64
	MaxPrice        float64
	Page            int // 1-based
	Limit           int // max rows per page (capped at 100 by service)
}

// DealRepository defines the deal-persistence capability.
type DealRepository interface {
	Create(ctx context.Context, d *domain.Deal) error
	// FindByReference retrieves a deal by its external reference. When agentID
	// is non-empty, the query is additionally filtered by agent_id.
	FindByReference(ctx context.Context, reference string, agentID string) (*domain.Deal, error)
	// UpdateStatus performs an atomic compare-and-set: the deal's status is
	// changed to next only if the stored status still equals expected. Returns
	// the updated deal, domain.ErrConcurrentModification when the precondition
	// fails, or domain.ErrDealNotFound when no such deal exists.
	UpdateStatus(ctx context.Context, reference string, expected, next domain.DealStatus, entry domain.StatusHistoryEntry) (*domain.Deal, error)
	// List returns a page of deals matching filter and the total count.
	List(ctx context.Context, filter ListDealsFilter) ([]*domain.Deal, int64, error)
}

// DocumentRepository persists deal document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.DealDocument) (*domain.DealDocument, error)
	ListByDeal(ctx context.Context, dealID string) ([]*domain.DealDocument, error)
}
