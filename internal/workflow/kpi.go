package workflow

// OwnershipFilter selects which requests a dashboard counts.
type OwnershipFilter string

const (
	OwnershipAll  OwnershipFilter = "all"
	OwnershipMine OwnershipFilter = "mine"
)

// RequestView is the minimal projection the aggregator needs.
type RequestView struct {
	Status    Status
	CreatedBy string
}

// KPIDef defines one dashboard bucket: a label, the filter key the UI uses to
// drill down, and the statuses it counts.
type KPIDef struct {
	Label     string
	FilterKey string
	Statuses  []Status
}

// KPI is a computed dashboard count.
type KPI struct {
	Label     string `json:"label"`
	FilterKey string `json:"filterKey"`
	Count     int    `json:"count"`
}

func statuses(sets ...map[Status]bool) []Status {
	var out []Status
	for _, s := range AllStatuses {
		for _, set := range sets {
			if set[s] {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// kpiTables holds the per-role bucket definitions. The buckets of any one
// role are pairwise disjoint so a request is never counted twice on the same
// dashboard.
var kpiTables = map[Role][]KPIDef{
	RoleSales: {
		{Label: "Drafts", FilterKey: "draft", Statuses: []Status{StatusDraft}},
		{Label: "Needs attention", FilterKey: "needs_attention", Statuses: statuses(needsAttentionSet)},
		{Label: "In progress", FilterKey: "in_progress", Statuses: statuses(inProgressSet)},
		{Label: "Completed", FilterKey: "final", Statuses: statuses(finalSet)},
	},
	RoleDesign: {
		{Label: "Incoming", FilterKey: "incoming", Statuses: []Status{StatusSubmitted, StatusEdited}},
		{Label: "Under review", FilterKey: "under_review", Statuses: []Status{StatusUnderReview}},
		{Label: "Awaiting clarification", FilterKey: "needs_attention", Statuses: statuses(needsAttentionSet)},
		{Label: "Design replied", FilterKey: "design_replied", Statuses: []Status{StatusFeasibilityConfirmed, StatusDesignResult}},
	},
	RoleCosting: {
		{Label: "Awaiting costing", FilterKey: "awaiting_costing", Statuses: []Status{StatusFeasibilityConfirmed, StatusDesignResult}},
		{Label: "In costing", FilterKey: "in_costing", Statuses: []Status{StatusInCosting}},
		{Label: "Costing processed", FilterKey: "costing_processed", Statuses: statuses(costingProcessedSet)},
	},
	RoleAdmin: {
		{Label: "Drafts", FilterKey: "draft", Statuses: []Status{StatusDraft}},
		{Label: "Needs attention", FilterKey: "needs_attention", Statuses: statuses(needsAttentionSet)},
		{Label: "In progress", FilterKey: "in_progress", Statuses: statuses(inProgressSet)},
		{Label: "Completed", FilterKey: "final", Statuses: statuses(finalSet)},
	},
}

// Buckets returns the KPI bucket definitions for role.
func Buckets(role Role) []KPIDef {
	return kpiTables[role]
}

// Aggregate computes the role's dashboard counts over a snapshot of requests.
// Pure and recomputed on every read: the collections involved are small and
// the counts are advisory UI figures.
func Aggregate(requests []RequestView, role Role, filter OwnershipFilter, actorID string) []KPI {
	defs := kpiTables[role]
	out := make([]KPI, len(defs))
	for i, def := range defs {
		out[i] = KPI{Label: def.Label, FilterKey: def.FilterKey}
	}

	for _, req := range requests {
		if filter == OwnershipMine && req.CreatedBy != actorID {
			continue
		}
		for i, def := range defs {
			if contains(def.Statuses, req.Status) {
				out[i].Count++
				break
			}
		}
	}
	return out
}
