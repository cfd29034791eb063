package domain

import "testing"

var allRoles = []Role{RoleAgent, RoleManager, RoleAdmin, RoleRealtor}

// policy mirrors the expected authorization table; the test walks every
// role x action pair so any drift in the real table shows up immediately.
var policy = map[Action]map[Role]bool{
	ActionCreateDeal:       {RoleAgent: true},
	ActionApproveDeal:      {RoleAdmin: true},
	ActionDeclineDeal:      {RoleAdmin: true},
	ActionForwardDeal:      {RoleRealtor: true},
	ActionViewAllDeals:     {RoleAdmin: true},
	ActionViewOwnDeals:     {RoleAgent: true},
	ActionViewRealtorQueue: {RoleRealtor: true},
	ActionUploadDocument:   {RoleAgent: true},
	ActionViewReports:      {RoleAdmin: true},
}

func TestAuthorizeExhaustive(t *testing.T) {
	for action, allowed := range policy {
		for _, role := range allRoles {
			err := Authorize(role, action)
			if allowed[role] && err != nil {
				t.Errorf("%s should be allowed %s, got %v", role, action, err)
			}
			if !allowed[role] && err == nil {
				t.Errorf("%s should be forbidden %s", role, action)
			}
		}
	}
}

func TestAuthorizeCoversAllActions(t *testing.T) {
	if len(Actions()) != len(policy) {
		t.Fatalf("policy table has %d actions, test expects %d", len(Actions()), len(policy))
	}
	for _, action := range Actions() {
		if _, ok := policy[action]; !ok {
			t.Errorf("action %s missing from test policy", action)
		}
	}
}

func TestAuthorizeUnknownAction(t *testing.T) {
	for _, role := range allRoles {
		if err := Authorize(role, Action("delete_everything")); err == nil {
			t.Errorf("unknown action should be forbidden for %s", role)
		}
	}
}

func TestManagerHasNoActions(t *testing.T) {
	for _, action := range Actions() {
		if err := Authorize(RoleManager, action); err == nil {
			t.Errorf("manager should have no permitted actions, but %s is allowed", action)
		}
	}
}
