package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// stubDealRepo is an in-memory DealRepository with the same compare-and-set
// semantics as the Mongo implementation.
type stubDealRepo struct {
	mu    sync.Mutex
	deals map[string]*domain.Deal
	next  int
}

func newStubDealRepo() *stubDealRepo {
	return &stubDealRepo{deals: make(map[string]*domain.Deal)}
}

func cloneDeal(d *domain.Deal) *domain.Deal {
	if d == nil {
		return nil
	}
	clone := *d
	clone.StatusHistory = append([]domain.StatusHistoryEntry(nil), d.StatusHistory...)
	return &clone
}

func (r *stubDealRepo) Create(_ context.Context, d *domain.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	d.ID = string(rune('a' + r.next))
	r.deals[d.Reference] = cloneDeal(d)
	return nil
}

func (r *stubDealRepo) FindByReference(_ context.Context, reference string, agentID string) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[reference]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	if agentID != "" && d.AgentID != agentID {
		return nil, domain.ErrDealNotFound
	}
	return cloneDeal(d), nil
}

func (r *stubDealRepo) UpdateStatus(_ context.Context, reference string, expected, next domain.DealStatus, entry domain.StatusHistoryEntry) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[reference]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	if d.Status != expected {
		return nil, domain.ErrConcurrentModification
	}
	d.Status = next
	d.UpdatedAt = entry.Timestamp
	d.StatusHistory = append(d.StatusHistory, entry)
	return cloneDeal(d), nil
}

func (r *stubDealRepo) List(_ context.Context, filter ports.ListDealsFilter) ([]*domain.Deal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Deal
	for _, d := range r.deals {
		if filter.AgentID != "" && d.AgentID != filter.AgentID {
			continue
		}
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		out = append(out, cloneDeal(d))
	}
	return out, int64(len(out)), nil
}

var (
	agentA  = &domain.User{ID: "agent_a", Username: "anna", Role: domain.RoleAgent}
	agentB  = &domain.User{ID: "agent_b", Username: "ben", Role: domain.RoleAgent}
	admin   = &domain.User{ID: "admin_1", Username: "root", Role: domain.RoleAdmin}
	realtor = &domain.User{ID: "realtor_1", Username: "rita", Role: domain.RoleRealtor}
	manager = &domain.User{ID: "manager_1", Username: "mike", Role: domain.RoleManager}
)

func validInput() ports.CreateDealInput {
	return ports.CreateDealInput{
		PropertyType:    "apartment",
		TransactionType: "sale",
		Location:        "Dubai Marina",
		SizeSqm:         120,
		Bedrooms:        2,
		Bathrooms:       2,
		Price:           500000,
		Currency:        "AED",
		Buyer:           ports.PartyInput{Name: "Buyer One", Email: "buyer@example.com"},
		Landlord:        ports.PartyInput{Name: "Landlord One"},
	}
}

func newTestDealService(repo ports.DealRepository, variant domain.WorkflowVariant) *DealService {
	return NewDealService(repo, variant, zerolog.Nop())
}

func TestDealService_Create(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, err := svc.Create(context.Background(), validInput(), agentA)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if deal.Status != domain.StatusPending {
		t.Fatalf("expected status pending, got %s", deal.Status)
	}
	if deal.AgentID != agentA.ID {
		t.Fatalf("expected agent_id %s, got %s", agentA.ID, deal.AgentID)
	}
	if deal.Reference == "" {
		t.Fatalf("expected a reference")
	}
	if len(deal.StatusHistory) != 1 || deal.StatusHistory[0].Status != domain.StatusPending {
		t.Fatalf("expected initial history entry, got %+v", deal.StatusHistory)
	}
	if deal.UpdatedAt.Before(deal.CreatedAt) {
		t.Fatalf("updated_at before created_at")
	}
}

func TestDealService_Create_RealtorVariant(t *testing.T) {
	svc := newTestDealService(newStubDealRepo(), domain.WorkflowRealtor)

	deal, err := svc.Create(context.Background(), validInput(), agentA)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if deal.Status != domain.StatusPendingRealtor {
		t.Fatalf("expected status pending_realtor, got %s", deal.Status)
	}
}

func TestDealService_Create_Forbidden(t *testing.T) {
	svc := newTestDealService(newStubDealRepo(), domain.WorkflowDirect)

	for _, actor := range []*domain.User{admin, realtor, manager} {
		if _, err := svc.Create(context.Background(), validInput(), actor); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

func TestDealService_Create_Validation(t *testing.T) {
	svc := newTestDealService(newStubDealRepo(), domain.WorkflowDirect)

	cases := []func(*ports.CreateDealInput){
		func(in *ports.CreateDealInput) { in.SizeSqm = 0 },
		func(in *ports.CreateDealInput) { in.SizeSqm = -10 },
		func(in *ports.CreateDealInput) { in.Price = 0 },
		func(in *ports.CreateDealInput) { in.Bedrooms = -1 },
		func(in *ports.CreateDealInput) { in.Bathrooms = -1 },
		func(in *ports.CreateDealInput) { in.TransactionType = "lease" },
		func(in *ports.CreateDealInput) { in.Location = "" },
		func(in *ports.CreateDealInput) { in.Currency = "" },
	}

	for i, mutate := range cases {
		input := validInput()
		mutate(&input)
		if _, err := svc.Create(context.Background(), input, agentA); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestDealService_Transition_AdminApproves(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)

	updated, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, admin)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if len(updated.StatusHistory) != 2 {
		t.Fatalf("expected two history entries, got %d", len(updated.StatusHistory))
	}
	if updated.AgentID != agentA.ID {
		t.Fatalf("agent_id must not change on transition")
	}
}

func TestDealService_Transition_AgentForbidden(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)

	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, agentB); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDealService_Transition_NotFound(t *testing.T) {
	svc := newTestDealService(newStubDealRepo(), domain.WorkflowDirect)

	if _, err := svc.Transition(context.Background(), "QR-MISSING", domain.StatusApproved, admin); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

func TestDealService_Transition_Invalid(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)
	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Terminal state: no further transitions.
	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusDeclined, admin); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDealService_Transition_ConcurrentConflict(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)

	// Both callers read status pending; the second update loses the race.
	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, admin); err != nil {
		t.Fatalf("first transition failed: %v", err)
	}
	stale, err := repo.UpdateStatus(context.Background(), deal.Reference, domain.StatusPending, domain.StatusDeclined, domain.StatusHistoryEntry{})
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v (deal: %+v)", err, stale)
	}
}

func TestDealService_RealtorPath(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowRealtor)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)

	// Admin cannot skip the realtor stage.
	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusPendingAdmin, admin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin forward, got %v", err)
	}
	// Approving straight from pending_realtor is not an edge at all.
	if _, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, admin); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	forwarded, err := svc.Transition(context.Background(), deal.Reference, domain.StatusPendingAdmin, realtor)
	if err != nil {
		t.Fatalf("realtor forward failed: %v", err)
	}
	if forwarded.Status != domain.StatusPendingAdmin {
		t.Fatalf("expected pending_admin, got %s", forwarded.Status)
	}

	approved, err := svc.Transition(context.Background(), deal.Reference, domain.StatusApproved, admin)
	if err != nil {
		t.Fatalf("admin approve failed: %v", err)
	}
	if approved.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
}

func TestDealService_List_Scoping(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), validInput(), agentA); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), validInput(), agentB); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	adminResult, err := svc.List(context.Background(), ports.ListDealsInput{}, admin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if adminResult.Total != 4 {
		t.Fatalf("admin should see 4 deals, got %d", adminResult.Total)
	}

	agentResult, err := svc.List(context.Background(), ports.ListDealsInput{}, agentA)
	if err != nil {
		t.Fatalf("agent list failed: %v", err)
	}
	if agentResult.Total != 3 {
		t.Fatalf("agent A should see 3 deals, got %d", agentResult.Total)
	}
	for _, d := range agentResult.Items {
		if d.AgentID != agentA.ID {
			t.Fatalf("agent A sees a foreign deal: %+v", d)
		}
	}

	if _, err := svc.List(context.Background(), ports.ListDealsInput{}, realtor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("realtor list should be forbidden, got %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListDealsInput{}, manager); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager list should be forbidden, got %v", err)
	}
}

func TestDealService_Get_Scoping(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowDirect)

	deal, _ := svc.Create(context.Background(), validInput(), agentA)

	if _, err := svc.Get(context.Background(), deal.Reference, admin); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), deal.Reference, agentA); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), deal.Reference, agentB); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("foreign agent should get not-found, got %v", err)
	}
	// Deal in direct workflow never enters the realtor pipeline.
	if _, err := svc.Get(context.Background(), deal.Reference, realtor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("realtor should be forbidden, got %v", err)
	}
}

func TestDealService_RealtorQueue(t *testing.T) {
	repo := newStubDealRepo()
	svc := newTestDealService(repo, domain.WorkflowRealtor)

	first, _ := svc.Create(context.Background(), validInput(), agentA)
	second, _ := svc.Create(context.Background(), validInput(), agentB)
	if _, err := svc.Transition(context.Background(), second.Reference, domain.StatusPendingAdmin, realtor); err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	result, err := svc.RealtorQueue(context.Background(), 1, 20, realtor)
	if err != nil {
		t.Fatalf("RealtorQueue returned error: %v", err)
	}
	if result.Total != 1 || result.Items[0].Reference != first.Reference {
		t.Fatalf("queue should contain only the unforwarded deal, got %+v", result.Items)
	}

	if _, err := svc.RealtorQueue(context.Background(), 1, 20, agentA); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("agent queue access should be forbidden, got %v", err)
	}
}
