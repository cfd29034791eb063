package domain

// Action tags an operation that requires a role check.
type Action string

const (
	ActionCreateDeal       Action = "create_deal"
	ActionApproveDeal      Action = "approve_deal"
	ActionDeclineDeal      Action = "decline_deal"
	ActionForwardDeal      Action = "approve_realtor_stage"
	ActionViewAllDeals     Action = "view_all_deals"
	ActionViewOwnDeals     Action = "view_own_deals"
	ActionViewRealtorQueue Action = "view_realtor_queue"
	ActionUploadDocument   Action = "upload_document"
	ActionViewReports      Action = "view_reports"
)

// actionRoles is the single authorization policy table. Every role check in
// the system goes through it; endpoints never hard-code roles. RoleManager is
// part of the role enum but currently maps to no action.
var actionRoles = map[Action][]Role{
	ActionCreateDeal:       {RoleAgent},
	ActionApproveDeal:      {RoleAdmin},
	ActionDeclineDeal:      {RoleAdmin},
	ActionForwardDeal:      {RoleRealtor},
	ActionViewAllDeals:     {RoleAdmin},
	ActionViewOwnDeals:     {RoleAgent},
	ActionViewRealtorQueue: {RoleRealtor},
	ActionUploadDocument:   {RoleAgent},
	ActionViewReports:      {RoleAdmin},
}

// Authorize reports whether role is permitted to perform action. It is a pure
// function of (role, action); an unknown action allows no role.
func Authorize(role Role, action Action) error {
	for _, allowed := range actionRoles[action] {
		if allowed == role {
			return nil
		}
	}
	return ErrForbidden
}

// Actions returns all actions in the policy table. Used by tests to cover the
// table exhaustively.
func Actions() []Action {
	actions := make([]Action, 0, len(actionRoles))
	for a := range actionRoles {
		actions = append(actions, a)
	}
	return actions
}
