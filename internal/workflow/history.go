package workflow

import "time"

// TransitionEvent is one entry in a request's append-only history. Entries
// are created exactly once per accepted transition and never mutated,
// reordered or deleted afterwards.
type TransitionEvent struct {
	Status    Status    `bson:"status" json:"status"`
	ActorRole Role      `bson:"actorRole" json:"actorRole"`
	ActorID   string    `bson:"actorId" json:"actorId"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
}

// NewTransitionEvent builds the history entry for an accepted transition.
func NewTransitionEvent(status Status, role Role, actorID, comment string, at time.Time) TransitionEvent {
	return TransitionEvent{
		Status:    status,
		ActorRole: role,
		ActorID:   actorID,
		Timestamp: at,
		Comment:   comment,
	}
}

// AppendHistory returns history extended with event. The input slice is not
// modified in place; callers persist the returned value.
func AppendHistory(history []TransitionEvent, event TransitionEvent) []TransitionEvent {
	out := make([]TransitionEvent, len(history), len(history)+1)
	copy(out, history)
	return append(out, event)
}
