package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from  DealStatus
		to    DealStatus
		valid bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusPendingAdmin, false},
		{StatusPendingRealtor, StatusPendingAdmin, true},
		{StatusPendingRealtor, StatusApproved, false},
		{StatusPendingAdmin, StatusApproved, true},
		{StatusPendingAdmin, StatusDeclined, true},
		{StatusApproved, StatusDeclined, false},
		{StatusDeclined, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.valid {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.valid, got)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !StatusApproved.IsTerminal() {
		t.Errorf("approved should be terminal")
	}
	if !StatusDeclined.IsTerminal() {
		t.Errorf("declined should be terminal")
	}
	if StatusPending.IsTerminal() {
		t.Errorf("pending should not be terminal")
	}
	if StatusPendingRealtor.IsTerminal() {
		t.Errorf("pending_realtor should not be terminal")
	}
}

func TestTransitionAllowedFor(t *testing.T) {
	cases := []struct {
		from    DealStatus
		to      DealStatus
		role    Role
		allowed bool
	}{
		{StatusPending, StatusApproved, RoleAdmin, true},
		{StatusPending, StatusApproved, RoleAgent, false},
		{StatusPending, StatusApproved, RoleRealtor, false},
		{StatusPending, StatusDeclined, RoleAdmin, true},
		{StatusPendingRealtor, StatusPendingAdmin, RoleRealtor, true},
		{StatusPendingRealtor, StatusPendingAdmin, RoleAdmin, false},
		{StatusPendingAdmin, StatusApproved, RoleAdmin, true},
		{StatusPendingAdmin, StatusApproved, RoleRealtor, false},
	}

	for _, tc := range cases {
		if got := tc.from.TransitionAllowedFor(tc.to, tc.role); got != tc.allowed {
			t.Errorf("%s -> %s as %s: expected %v, got %v", tc.from, tc.to, tc.role, tc.allowed, got)
		}
	}
}

func TestWorkflowInitialStatus(t *testing.T) {
	if got := WorkflowDirect.InitialStatus(); got != StatusPending {
		t.Fatalf("direct workflow should start at pending, got %s", got)
	}
	if got := WorkflowRealtor.InitialStatus(); got != StatusPendingRealtor {
		t.Fatalf("realtor workflow should start at pending_realtor, got %s", got)
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("approved"); !ok {
		t.Errorf("approved should parse")
	}
	if _, ok := ParseStatus("shipped"); ok {
		t.Errorf("unknown status should not parse")
	}
}
