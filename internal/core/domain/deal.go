package domain

import "time"

// DealStatus represents the lifecycle state of a deal.
type DealStatus string

const (
	StatusPending        DealStatus = "pending"
	StatusPendingRealtor DealStatus = "pending_realtor"
	StatusPendingAdmin   DealStatus = "pending_admin"
	StatusApproved       DealStatus = "approved"
	StatusDeclined       DealStatus = "declined"
)

// WorkflowVariant selects which approval pipeline deals go through.
type WorkflowVariant string

const (
	// WorkflowDirect is the two-step pipeline: pending -> approved/declined.
	WorkflowDirect WorkflowVariant = "direct"
	// WorkflowRealtor adds a realtor pre-approval stage:
	// pending_realtor -> pending_admin -> approved/declined.
	WorkflowRealtor WorkflowVariant = "realtor"
)

// validTransitions defines the allowed state machine transitions across both
// workflow variants. Which initial state a deal starts in is decided by the
// configured variant; the reachable edges themselves never overlap.
var validTransitions = map[DealStatus][]DealStatus{
	StatusPending:        {StatusApproved, StatusDeclined},
	StatusPendingRealtor: {StatusPendingAdmin},
	StatusPendingAdmin:   {StatusApproved, StatusDeclined},
}

// transitionRoles maps each state machine edge to the roles allowed to drive it.
var transitionRoles = map[DealStatus]map[DealStatus][]Role{
	StatusPending: {
		StatusApproved: {RoleAdmin},
		StatusDeclined: {RoleAdmin},
	},
	StatusPendingRealtor: {
		StatusPendingAdmin: {RoleRealtor},
	},
	StatusPendingAdmin: {
		StatusApproved: {RoleAdmin},
		StatusDeclined: {RoleAdmin},
	},
}

// CanTransitionTo reports whether a transition from the current status to next
// is a valid state machine edge.
func (s DealStatus) CanTransitionTo(next DealStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s DealStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// TransitionAllowedFor reports whether role may drive the edge from s to next.
// Callers must check CanTransitionTo first; an unknown edge allows no role.
func (s DealStatus) TransitionAllowedFor(next DealStatus, role Role) bool {
	for _, r := range transitionRoles[s][next] {
		if r == role {
			return true
		}
	}
	return false
}

// InitialStatus returns the status newly created deals start in.
func (v WorkflowVariant) InitialStatus() DealStatus {
	if v == WorkflowRealtor {
		return StatusPendingRealtor
	}
	return StatusPending
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (DealStatus, bool) {
	switch DealStatus(raw) {
	case StatusPending, StatusPendingRealtor, StatusPendingAdmin, StatusApproved, StatusDeclined:
		return DealStatus(raw), true
	}
	return "", false
}

// TransactionType distinguishes sales from rentals.
type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
)

// Party represents a buyer or landlord attached to a deal.
type Party struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// StatusHistoryEntry records a single status transition on a deal.
type StatusHistoryEntry struct {
	Status    DealStatus `json:"status" bson:"status"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	Actor     string     `json:"actor,omitempty" bson:"actor,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Deal is the core aggregate root. AgentID is set at creation and never
// changes; Status only moves along validTransitions edges.
type Deal struct {
	ID              string               `json:"id" bson:"_id,omitempty"`
	Reference       string               `json:"reference" bson:"reference"`
	AgentID         string               `json:"agent_id" bson:"agent_id"`
	PropertyType    string               `json:"property_type" bson:"property_type"`
	TransactionType TransactionType      `json:"transaction_type" bson:"transaction_type"`
	Location        string               `json:"location" bson:"location"`
	SizeSqm         float64              `json:"size_sqm" bson:"size_sqm"`
	Bedrooms        int                  `json:"bedrooms" bson:"bedrooms"`
	Bathrooms       int                  `json:"bathrooms" bson:"bathrooms"`
	Price           float64              `json:"price" bson:"price"`
	Currency        string               `json:"currency" bson:"currency"`
	Buyer           Party                `json:"buyer" bson:"buyer"`
	Landlord        Party                `json:"landlord" bson:"landlord"`
	Amenities       []string             `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	Status          DealStatus           `json:"status" bson:"status"`
	StatusHistory   []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}
