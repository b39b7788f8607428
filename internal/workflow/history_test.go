package workflow

import (
	"testing"
	"time"
)

func TestAppendHistoryIsAppendOnly(t *testing.T) {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	var history []TransitionEvent
	steps := []Status{StatusSubmitted, StatusUnderReview, StatusFeasibilityConfirmed, StatusInCosting}

	var snapshots [][]TransitionEvent
	for i, s := range steps {
		event := NewTransitionEvent(s, RoleDesign, "u1", "", base.Add(time.Duration(i)*time.Hour))
		history = AppendHistory(history, event)
		snapshots = append(snapshots, history)

		if len(history) != i+1 {
			t.Fatalf("after %d transitions history length = %d", i+1, len(history))
		}
	}

	// Earlier snapshots are prefixes of later ones, unchanged by later appends.
	for i, snap := range snapshots {
		for j := 0; j <= i; j++ {
			if snap[j].Status != steps[j] {
				t.Errorf("snapshot %d entry %d = %s, want %s", i, j, snap[j].Status, steps[j])
			}
		}
	}
}

func TestAppendHistoryDoesNotAliasInput(t *testing.T) {
	first := NewTransitionEvent(StatusSubmitted, RoleSales, "u1", "", time.Now())
	history := AppendHistory(nil, first)

	// Two diverging appends from the same prefix must not clobber each other.
	a := AppendHistory(history, NewTransitionEvent(StatusUnderReview, RoleDesign, "u2", "", time.Now()))
	b := AppendHistory(history, NewTransitionEvent(StatusClarificationNeeded, RoleDesign, "u2", "why", time.Now()))

	if a[1].Status != StatusUnderReview {
		t.Errorf("a[1] = %s", a[1].Status)
	}
	if b[1].Status != StatusClarificationNeeded {
		t.Errorf("b[1] = %s", b[1].Status)
	}
	if history[0] != first {
		t.Error("prefix mutated")
	}
}
