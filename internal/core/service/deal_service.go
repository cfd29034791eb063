package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

const maxPageSize = 100

// DealService implements the deal approval workflow.
type DealService struct {
	repo    ports.DealRepository
	variant domain.WorkflowVariant
	log     zerolog.Logger
}

func NewDealService(repo ports.DealRepository, variant domain.WorkflowVariant, log zerolog.Logger) *DealService {
	if variant != domain.WorkflowRealtor {
		variant = domain.WorkflowDirect
	}
	return &DealService{repo: repo, variant: variant, log: log}
}

// Create validates the deal invariants, stamps the initial workflow status,
// and persists the deal for the acting agent.
func (s *DealService) Create(ctx context.Context, input ports.CreateDealInput, actor *domain.User) (*domain.Deal, error) {
	if err := domain.Authorize(actor.Role, domain.ActionCreateDeal); err != nil {
		return nil, err
	}
	if err := validateDealInput(input); err != nil {
		return nil, err
	}

	now := nowUTC()
	initial := s.variant.InitialStatus()
	deal := &domain.Deal{
		Reference:       generateReference(),
		AgentID:         actor.ID,
		PropertyType:    input.PropertyType,
		TransactionType: domain.TransactionType(input.TransactionType),
		Location:        input.Location,
		SizeSqm:         input.SizeSqm,
		Bedrooms:        input.Bedrooms,
		Bathrooms:       input.Bathrooms,
		Price:           input.Price,
		Currency:        input.Currency,
		Buyer: domain.Party{
			Name:  input.Buyer.Name,
			Email: input.Buyer.Email,
			Phone: input.Buyer.Phone,
		},
		Landlord: domain.Party{
			Name:  input.Landlord.Name,
			Email: input.Landlord.Email,
			Phone: input.Landlord.Phone,
		},
		Amenities:   input.Amenities,
		Description: input.Description,
		Status:      initial,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: initial, Timestamp: now, Actor: actor.Username},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		s.log.Error().Err(err).Msg("failed to create deal")
		return nil, err
	}

	s.log.Info().Str("reference", deal.Reference).Str("agent_id", actor.ID).Msg("deal created")
	return deal, nil
}

// Get retrieves a single deal, scoped by the actor's role: admins see any
// deal, agents only their own, realtors only deals in the realtor pipeline.
func (s *DealService) Get(ctx context.Context, reference string, actor *domain.User) (*domain.Deal, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.repo.FindByReference(ctx, reference, "")
	case domain.RoleAgent:
		return s.repo.FindByReference(ctx, reference, actor.ID)
	case domain.RoleRealtor:
		deal, err := s.repo.FindByReference(ctx, reference, "")
		if err != nil {
			return nil, err
		}
		if deal.Status != domain.StatusPendingRealtor && deal.Status != domain.StatusPendingAdmin {
			return nil, domain.ErrForbidden
		}
		return deal, nil
	default:
		return nil, domain.ErrForbidden
	}
}

// Transition moves a deal to target. The edge must exist in the state machine,
// the actor's role must be allowed to drive it, and the persisted update only
// commits if the stored status still equals the one read here; a lost race
// surfaces as domain.ErrConcurrentModification.
func (s *DealService) Transition(ctx context.Context, reference string, target domain.DealStatus, actor *domain.User) (*domain.Deal, error) {
	deal, err := s.repo.FindByReference(ctx, reference, "")
	if err != nil {
		return nil, err
	}

	if !deal.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, deal.Status, target)
	}
	if !deal.Status.TransitionAllowedFor(target, actor.Role) {
		return nil, domain.ErrForbidden
	}

	entry := domain.StatusHistoryEntry{
		Status:    target,
		Timestamp: nowUTC(),
		Actor:     actor.Username,
	}

	updated, err := s.repo.UpdateStatus(ctx, reference, deal.Status, target, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reference", reference).
		Str("from", string(deal.Status)).
		Str("to", string(target)).
		Str("actor", actor.Username).
		Msg("deal transitioned")

	return updated, nil
}

// List returns deals visible to the actor: admins see everything matching the
// filters, agents only deals they own.
func (s *DealService) List(ctx context.Context, input ports.ListDealsInput, actor *domain.User) (*ports.ListDealsResult, error) {
	filter := ports.ListDealsFilter{
		Status:          input.Status,
		PropertyType:    input.PropertyType,
		TransactionType: input.TransactionType,
		Location:        input.Location,
		MinPrice:        input.MinPrice,
		MaxPrice:        input.MaxPrice,
		Page:            normalizePage(input.Page),
		Limit:           normalizeLimit(input.Limit),
	}

	switch {
	case domain.Authorize(actor.Role, domain.ActionViewAllDeals) == nil:
		// admin: unscoped
	case domain.Authorize(actor.Role, domain.ActionViewOwnDeals) == nil:
		filter.AgentID = actor.ID
	default:
		return nil, domain.ErrForbidden
	}

	return s.list(ctx, filter)
}

// RealtorQueue lists deals waiting in the realtor pre-approval stage.
func (s *DealService) RealtorQueue(ctx context.Context, page, limit int, actor *domain.User) (*ports.ListDealsResult, error) {
	if err := domain.Authorize(actor.Role, domain.ActionViewRealtorQueue); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.ListDealsFilter{
		Status: string(domain.StatusPendingRealtor),
		Page:   normalizePage(page),
		Limit:  normalizeLimit(limit),
	})
}

func (s *DealService) list(ctx context.Context, filter ports.ListDealsFilter) (*ports.ListDealsResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListDealsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func validateDealInput(input ports.CreateDealInput) error {
	switch {
	case input.PropertyType == "":
		return fmt.Errorf("%w: property_type is required", domain.ErrValidation)
	case input.TransactionType != string(domain.TransactionSale) && input.TransactionType != string(domain.TransactionRent):
		return fmt.Errorf("%w: transaction_type must be sale or rent", domain.ErrValidation)
	case input.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case input.SizeSqm <= 0:
		return fmt.Errorf("%w: size_sqm must be positive", domain.ErrValidation)
	case input.Bedrooms < 0:
		return fmt.Errorf("%w: bedrooms cannot be negative", domain.ErrValidation)
	case input.Bathrooms < 0:
		return fmt.Errorf("%w: bathrooms cannot be negative", domain.ErrValidation)
	case input.Price <= 0:
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	case input.Currency == "":
		return fmt.Errorf("%w: currency is required", domain.ErrValidation)
	}
	return nil
}

// generateReference returns a unique deal reference in the format QR-XXXXXXXX.
func generateReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("QR-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("QR-%08X", b)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return 20
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
