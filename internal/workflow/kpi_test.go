package workflow

import "testing"

func TestBucketsDisjointPerRole(t *testing.T) {
	// A request must never be double counted on a role's dashboard.
	for _, role := range AllRoles {
		seen := map[Status]string{}
		for _, def := range Buckets(role) {
			for _, s := range def.Statuses {
				if prev, dup := seen[s]; dup {
					t.Errorf("role %s: status %s in both %q and %q", role, s, prev, def.FilterKey)
				}
				seen[s] = def.FilterKey
			}
		}
	}
}

func TestAggregateCounts(t *testing.T) {
	requests := []RequestView{
		{Status: StatusDraft, CreatedBy: "u1"},
		{Status: StatusDraft, CreatedBy: "u2"},
		{Status: StatusSubmitted, CreatedBy: "u1"},
		{Status: StatusClarificationNeeded, CreatedBy: "u1"},
		{Status: StatusGMApproved, CreatedBy: "u2"},
		{Status: StatusGMRejected, CreatedBy: "u1"},
		{Status: StatusClosed, CreatedBy: "u1"},
	}

	got := Aggregate(requests, RoleSales, OwnershipAll, "u1")
	want := map[string]int{"draft": 2, "needs_attention": 1, "in_progress": 2, "final": 2}
	for _, kpi := range got {
		if kpi.Count != want[kpi.FilterKey] {
			t.Errorf("bucket %s = %d, want %d", kpi.FilterKey, kpi.Count, want[kpi.FilterKey])
		}
	}

	// Sum over a partitioning role equals the filtered total.
	total := 0
	for _, kpi := range got {
		total += kpi.Count
	}
	if total != len(requests) {
		t.Errorf("sales buckets sum to %d, want %d", total, len(requests))
	}
}

func TestAggregateOwnershipFilter(t *testing.T) {
	requests := []RequestView{
		{Status: StatusDraft, CreatedBy: "u1"},
		{Status: StatusDraft, CreatedBy: "u2"},
		{Status: StatusSubmitted, CreatedBy: "u2"},
	}

	got := Aggregate(requests, RoleSales, OwnershipMine, "u1")
	for _, kpi := range got {
		switch kpi.FilterKey {
		case "draft":
			if kpi.Count != 1 {
				t.Errorf("draft = %d, want 1", kpi.Count)
			}
		default:
			if kpi.Count != 0 {
				t.Errorf("bucket %s = %d, want 0", kpi.FilterKey, kpi.Count)
			}
		}
	}
}

func TestAggregateEmptySnapshot(t *testing.T) {
	got := Aggregate(nil, RoleCosting, OwnershipAll, "")
	if len(got) != len(Buckets(RoleCosting)) {
		t.Fatalf("got %d buckets, want %d", len(got), len(Buckets(RoleCosting)))
	}
	for _, kpi := range got {
		if kpi.Count != 0 {
			t.Errorf("bucket %s = %d, want 0", kpi.FilterKey, kpi.Count)
		}
	}
}
