package workflow

// Status is the closed set of request lifecycle states. The string values are
// a wire contract: stored documents and API payloads use these exact
// spellings, and historical data depends on them (notably gm_rejected).
type Status string

const (
	StatusDraft                Status = "draft"
	StatusSubmitted            Status = "submitted"
	StatusEdited               Status = "edited"
	StatusUnderReview          Status = "under_review"
	StatusFeasibilityConfirmed Status = "feasibility_confirmed"
	StatusClarificationNeeded  Status = "clarification_needed"
	StatusDesignResult         Status = "design_result"
	StatusInCosting            Status = "in_costing"
	StatusCostingComplete      Status = "costing_complete"
	StatusSalesFollowup        Status = "sales_followup"
	StatusGMApprovalPending    Status = "gm_approval_pending"
	StatusGMApproved           Status = "gm_approved"
	StatusGMRejected           Status = "gm_rejected"
	StatusClosed               Status = "closed"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusEdited,
	StatusUnderReview,
	StatusFeasibilityConfirmed,
	StatusClarificationNeeded,
	StatusDesignResult,
	StatusInCosting,
	StatusCostingComplete,
	StatusSalesFollowup,
	StatusGMApprovalPending,
	StatusGMApproved,
	StatusGMRejected,
	StatusClosed,
}

// Derived sets used for dashboard filtering and bulk gating. They are
// read-side groupings, not exclusivity constraints.
var (
	finalSet = map[Status]bool{
		StatusGMApproved: true,
		StatusClosed:     true,
	}

	needsAttentionSet = map[Status]bool{
		StatusClarificationNeeded: true,
	}

	// gm_rejected stays in the in-progress set for records written under the
	// older workflow version.
	inProgressSet = map[Status]bool{
		StatusSubmitted:            true,
		StatusEdited:               true,
		StatusUnderReview:          true,
		StatusFeasibilityConfirmed: true,
		StatusDesignResult:         true,
		StatusInCosting:            true,
		StatusCostingComplete:      true,
		StatusSalesFollowup:        true,
		StatusGMApprovalPending:    true,
		StatusGMRejected:           true,
	}

	costingProcessedSet = map[Status]bool{
		StatusCostingComplete:   true,
		StatusSalesFollowup:     true,
		StatusGMApprovalPending: true,
		StatusGMApproved:        true,
		StatusGMRejected:        true,
	}
)

// Valid reports whether s is a member of the closed status enumeration.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsFinal reports whether s is terminal for ordinary roles. Only admin edit
// mode can move a request out of a final status.
func IsFinal(s Status) bool { return finalSet[s] }

// NeedsAttention reports whether s is waiting on the request owner.
func NeedsAttention(s Status) bool { return needsAttentionSet[s] }

// IsInProgress reports whether s counts as active work on dashboards.
func IsInProgress(s Status) bool { return inProgressSet[s] }

// IsCostingProcessed reports whether s is at or past costing completion.
func IsCostingProcessed(s Status) bool { return costingProcessedSet[s] }

// Role is the closed set of actor roles. Each user holds exactly one.
type Role string

const (
	RoleSales   Role = "sales"
	RoleDesign  Role = "design"
	RoleCosting Role = "costing"
	RoleAdmin   Role = "admin"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleSales, RoleDesign, RoleCosting, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}
