package workflow

// rule is one row of the transition table: a role acting on a request in one
// of From may move it to any of To.
type rule struct {
	From []Status
	To   []Status
}

// transitionRules is the whole role-gated transition table. Keeping it in one
// place (instead of membership checks scattered through handlers) is what
// makes the workflow testable on its own.
//
// gm_rejected and edited appear only as source statuses: no rule writes
// either one. A GM rejection routes back to sales_followup; both values stay
// readable for records written under the older workflow.
var transitionRules = map[Role][]rule{
	RoleSales: {
		// Author flow: drafts and clarification bounce-backs get (re)submitted.
		{
			From: []Status{StatusDraft, StatusClarificationNeeded},
			To:   []Status{StatusSubmitted},
		},
		// Follow-up flow after costing, up to handing off for GM approval.
		// gm_approved is final and excluded.
		{
			From: []Status{StatusCostingComplete, StatusSalesFollowup, StatusGMApprovalPending, StatusGMRejected},
			To:   []Status{StatusSalesFollowup, StatusGMApprovalPending},
		},
	},
	RoleDesign: {
		{
			From: []Status{StatusSubmitted, StatusUnderReview, StatusFeasibilityConfirmed, StatusDesignResult},
			To:   []Status{StatusUnderReview, StatusClarificationNeeded, StatusFeasibilityConfirmed, StatusDesignResult},
		},
	},
	RoleCosting: {
		{
			From: []Status{StatusFeasibilityConfirmed, StatusDesignResult, StatusInCosting},
			To:   []Status{StatusInCosting, StatusCostingComplete},
		},
	},
	// RoleAdmin intentionally has no rows: without edit mode an admin is
	// bound like anyone else, with edit mode every gate is bypassed.
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

func contains(ss []Status, s Status) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Authorize decides whether actor role may move a request from current to
// requested. adminEdit is the admin edit-mode escape hatch: it bypasses every
// role/status gate and is the only path that can change a request already in
// a final status.
//
// A request for the current status itself is allowed as a no-op write
// (edit bookkeeping) for any role that has a rule covering that status.
func Authorize(current Status, role Role, adminEdit bool, requested Status) Decision {
	if !requested.Valid() || !current.Valid() {
		return deny(ReasonInvalidTransition)
	}

	if adminEdit && role == RoleAdmin {
		return allow()
	}

	rules, ok := transitionRules[role]
	if !ok {
		return deny(ReasonRoleNotPermitted)
	}

	touches := false
	for _, r := range rules {
		if !contains(r.From, current) {
			continue
		}
		touches = true
		if requested == current {
			return allow()
		}
		if contains(r.To, requested) {
			return allow()
		}
	}

	if touches {
		return deny(ReasonInvalidTransition)
	}
	return deny(ReasonRoleNotPermitted)
}

// PermittedTargets returns the statuses the role may move a request in
// current to, the same-status no-op excluded. Used by the API layer to tell
// the form which actions to offer.
func PermittedTargets(current Status, role Role, adminEdit bool) []Status {
	if adminEdit && role == RoleAdmin {
		targets := make([]Status, 0, len(AllStatuses))
		for _, s := range AllStatuses {
			if s != current {
				targets = append(targets, s)
			}
		}
		return targets
	}

	var targets []Status
	for _, r := range transitionRules[role] {
		if !contains(r.From, current) {
			continue
		}
		for _, to := range r.To {
			if to != current && !contains(targets, to) {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

// CanEditContent reports whether the role may edit request content (not just
// status) in the given status: sales own their drafts and clarification
// bounce-backs plus the sales follow-up fields after costing; admin edit mode
// may touch anything.
func CanEditContent(current Status, role Role, adminEdit bool) bool {
	if adminEdit && role == RoleAdmin {
		return true
	}
	if role != RoleSales {
		return false
	}
	if current == StatusDraft || current == StatusClarificationNeeded {
		return true
	}
	return IsCostingProcessed(current) && current != StatusGMApproved
}
