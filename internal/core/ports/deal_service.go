package ports

import (
	"context"
	"io"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// PartyInput holds buyer or landlord contact details.
type PartyInput struct {
	Name  string
	Email string
	Phone string
}

// CreateDealInput carries all data needed to create a new deal.
type CreateDealInput struct {
	PropertyType    string
	TransactionType string
	Location        string
	SizeSqm         float64
	Bedrooms        int
	Bathrooms       int
	Price           float64
	Currency        string
	Buyer           PartyInput
	Landlord        PartyInput
	Amenities       []string
	Description     string
}

// ListDealsInput carries all parameters for the list endpoint.
type ListDealsInput struct {
	Status          string
	PropertyType    string
	TransactionType string
	Location        string
	MinPrice        float64
	MaxPrice        float64
	Page            int
	Limit           int
}

// ListDealsResult is returned by ListDeals.
type ListDealsResult struct {
	Items      []*domain.Deal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DealService defines use-case operations for deals. Every method takes the
// acting user; role checks happen inside, against the authorization table.
type DealService interface {
	Create(ctx context.Context, input CreateDealInput, actor *domain.User) (*domain.Deal, error)
	Get(ctx context.Context, reference string, actor *domain.User) (*domain.Deal, error)
	// Transition moves a deal to target if the edge is valid, the actor's role
	// may drive it, and no concurrent transition won the race.
	Transition(ctx context.Context, reference string, target domain.DealStatus, actor *domain.User) (*domain.Deal, error)
	// List scopes visibility by role: admins see all, agents see their own.
	List(ctx context.Context, input ListDealsInput, actor *domain.User) (*ListDealsResult, error)
	// RealtorQueue lists deals waiting in the realtor pre-approval stage.
	RealtorQueue(ctx context.Context, page, limit int, actor *domain.User) (*ListDealsResult, error)
}

// AttachDocumentInput carries an uploaded file for a deal.
type AttachDocumentInput struct {
	FileType string
	FileName string
	Content  io.Reader
}

// DocumentService attaches files to deals.
type DocumentService interface {
	Attach(ctx context.Context, reference string, input AttachDocumentInput, actor *domain.User) (*domain.DealDocument, error)
	ListForDeal(ctx context.Context, reference string, actor *domain.User) ([]*domain.DealDocument, error)
}
