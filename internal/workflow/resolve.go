package workflow

import (
	"fmt"
	"time"
)

// Notification events emitted by accepted transitions. The names are part of
// the notification flow-map contract (settings overrides key off them).
const (
	EventRequestCreated       = "request_created"
	EventRequestStatusChanged = "request_status_changed"
)

// Input carries the auxiliary fields an actor may supply with a transition.
// Which ones are required depends on the target status.
type Input struct {
	Comment                 string     `json:"comment"`
	AcceptanceMessage       string     `json:"acceptanceMessage"`
	ExpectedDesignReplyDate *time.Time `json:"expectedDesignReplyDate"`
	DesignResultComments    string     `json:"designResultComments"`
	DesignResultAttachments []string   `json:"designResultAttachments"`
	CostingNotes            string     `json:"costingNotes"`
}

// Resolution is the write plan for an accepted transition: the auxiliary
// fields to persist atomically with the status change, and the notification
// event to emit afterwards (empty for no-op writes).
type Resolution struct {
	FieldUpdates map[string]any
	NotifyEvent  string
}

// Resolve computes the side effects of moving a request from current to
// requested. It assumes the transition was already authorized. A transition
// whose target requires an auxiliary field fails with ErrMissingRequiredField
// when that field is absent; nothing is partially applied.
func Resolve(current, requested Status, in Input) (*Resolution, error) {
	res := &Resolution{FieldUpdates: map[string]any{}}

	// Same-status writes are edit bookkeeping: no fields, no event.
	if current == requested {
		return res, nil
	}

	switch requested {
	case StatusClarificationNeeded:
		if in.Comment == "" {
			return nil, fmt.Errorf("%w: comment", ErrMissingRequiredField)
		}
		res.FieldUpdates["clarificationComment"] = in.Comment

	case StatusFeasibilityConfirmed:
		if in.AcceptanceMessage == "" {
			return nil, fmt.Errorf("%w: acceptanceMessage", ErrMissingRequiredField)
		}
		if in.ExpectedDesignReplyDate == nil {
			return nil, fmt.Errorf("%w: expectedDesignReplyDate", ErrMissingRequiredField)
		}
		res.FieldUpdates["acceptanceMessage"] = in.AcceptanceMessage
		res.FieldUpdates["expectedDesignReplyDate"] = *in.ExpectedDesignReplyDate

	case StatusDesignResult:
		if in.DesignResultComments == "" && len(in.DesignResultAttachments) == 0 {
			return nil, fmt.Errorf("%w: designResultComments or designResultAttachments", ErrMissingRequiredField)
		}
		if in.DesignResultComments != "" {
			res.FieldUpdates["designResultComments"] = in.DesignResultComments
		}
		if len(in.DesignResultAttachments) > 0 {
			res.FieldUpdates["designResultAttachments"] = in.DesignResultAttachments
		}

	case StatusCostingComplete:
		if in.CostingNotes != "" {
			res.FieldUpdates["costingNotes"] = in.CostingNotes
		}
	}

	if current == StatusDraft && requested == StatusSubmitted {
		res.NotifyEvent = EventRequestCreated
	} else {
		res.NotifyEvent = EventRequestStatusChanged
	}

	return res, nil
}
