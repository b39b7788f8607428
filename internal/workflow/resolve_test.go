package workflow

import (
	"errors"
	"testing"
	"time"
)

func TestResolveClarificationNeedsComment(t *testing.T) {
	_, err := Resolve(StatusSubmitted, StatusClarificationNeeded, Input{})
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("err = %v, want ErrMissingRequiredField", err)
	}

	res, err := Resolve(StatusSubmitted, StatusClarificationNeeded, Input{Comment: "need torque spec"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.FieldUpdates["clarificationComment"]; got != "need torque spec" {
		t.Errorf("clarificationComment = %v", got)
	}
	if res.NotifyEvent != EventRequestStatusChanged {
		t.Errorf("NotifyEvent = %q, want %q", res.NotifyEvent, EventRequestStatusChanged)
	}
}

func TestResolveFeasibilityNeedsMessageAndDate(t *testing.T) {
	reply := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      Input
		wantErr bool
	}{
		{"missing both", Input{}, true},
		{"missing date", Input{AcceptanceMessage: "accepted"}, true},
		{"missing message", Input{ExpectedDesignReplyDate: &reply}, true},
		{"both present", Input{AcceptanceMessage: "accepted", ExpectedDesignReplyDate: &reply}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(StatusUnderReview, StatusFeasibilityConfirmed, tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingRequiredField) {
					t.Fatalf("err = %v, want ErrMissingRequiredField", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.FieldUpdates["acceptanceMessage"] != "accepted" {
				t.Errorf("acceptanceMessage = %v", res.FieldUpdates["acceptanceMessage"])
			}
			if res.FieldUpdates["expectedDesignReplyDate"] != reply {
				t.Errorf("expectedDesignReplyDate = %v", res.FieldUpdates["expectedDesignReplyDate"])
			}
		})
	}
}

func TestResolveDesignResultNeedsCommentsOrAttachments(t *testing.T) {
	if _, err := Resolve(StatusUnderReview, StatusDesignResult, Input{}); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("err = %v, want ErrMissingRequiredField", err)
	}

	res, err := Resolve(StatusUnderReview, StatusDesignResult, Input{DesignResultAttachments: []string{"drawing.pdf"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.FieldUpdates["designResultAttachments"]; !ok {
		t.Error("designResultAttachments not set")
	}
}

func TestResolveCostingNotesOptional(t *testing.T) {
	res, err := Resolve(StatusInCosting, StatusCostingComplete, Input{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.FieldUpdates) != 0 {
		t.Errorf("FieldUpdates = %v, want empty", res.FieldUpdates)
	}

	res, err = Resolve(StatusInCosting, StatusCostingComplete, Input{CostingNotes: "tooling amortized"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FieldUpdates["costingNotes"] != "tooling amortized" {
		t.Errorf("costingNotes = %v", res.FieldUpdates["costingNotes"])
	}
}

func TestResolveNotifyEvents(t *testing.T) {
	// First submit announces creation, everything else a status change.
	res, err := Resolve(StatusDraft, StatusSubmitted, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NotifyEvent != EventRequestCreated {
		t.Errorf("draft->submitted event = %q, want %q", res.NotifyEvent, EventRequestCreated)
	}

	res, err = Resolve(StatusClarificationNeeded, StatusSubmitted, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NotifyEvent != EventRequestStatusChanged {
		t.Errorf("resubmit event = %q, want %q", res.NotifyEvent, EventRequestStatusChanged)
	}
}

func TestResolveSameStatusIsSilentNoOp(t *testing.T) {
	res, err := Resolve(StatusSubmitted, StatusSubmitted, Input{Comment: "tweak"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.FieldUpdates) != 0 || res.NotifyEvent != "" {
		t.Errorf("no-op resolution = %+v, want empty", res)
	}
}
