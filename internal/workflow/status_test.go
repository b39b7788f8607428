package workflow

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("%s not valid", s)
		}
	}
	if Status("approved").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestLegacyStatusesRemainReadable(t *testing.T) {
	// gm_rejected is never written by current rules but must stay a valid,
	// readable status for records created under the older workflow.
	if !Status("gm_rejected").Valid() {
		t.Error("gm_rejected dropped from the enumeration")
	}
	if !IsInProgress(StatusGMRejected) {
		t.Error("gm_rejected left out of the in-progress set")
	}
	if !IsCostingProcessed(StatusGMRejected) {
		t.Error("gm_rejected left out of the costing-processed set")
	}
	if !Status("edited").Valid() {
		t.Error("edited dropped from the enumeration")
	}
}

func TestDerivedSetMembership(t *testing.T) {
	tests := []struct {
		status           Status
		final            bool
		needsAttention   bool
		inProgress       bool
		costingProcessed bool
	}{
		{StatusDraft, false, false, false, false},
		{StatusSubmitted, false, false, true, false},
		{StatusClarificationNeeded, false, true, false, false},
		{StatusCostingComplete, false, false, true, true},
		{StatusGMApprovalPending, false, false, true, true},
		{StatusGMApproved, true, false, false, true},
		{StatusGMRejected, false, false, true, true},
		{StatusClosed, true, false, false, false},
	}
	for _, tt := range tests {
		if got := IsFinal(tt.status); got != tt.final {
			t.Errorf("IsFinal(%s) = %v", tt.status, got)
		}
		if got := NeedsAttention(tt.status); got != tt.needsAttention {
			t.Errorf("NeedsAttention(%s) = %v", tt.status, got)
		}
		if got := IsInProgress(tt.status); got != tt.inProgress {
			t.Errorf("IsInProgress(%s) = %v", tt.status, got)
		}
		if got := IsCostingProcessed(tt.status); got != tt.costingProcessed {
			t.Errorf("IsCostingProcessed(%s) = %v", tt.status, got)
		}
	}
}

func TestLifecyclePartition(t *testing.T) {
	// Every status belongs to exactly one of final, needs-attention,
	// in-progress or draft.
	for _, s := range AllStatuses {
		memberships := 0
		if IsFinal(s) {
			memberships++
		}
		if NeedsAttention(s) {
			memberships++
		}
		if IsInProgress(s) {
			memberships++
		}
		if s == StatusDraft {
			memberships++
		}
		if memberships != 1 {
			t.Errorf("%s belongs to %d lifecycle groups, want 1", s, memberships)
		}
	}
}
