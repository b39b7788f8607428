package workflow

import "errors"

// Denial and failure reasons surfaced to the API layer. These codes are part
// of the API response contract; controllers map them to HTTP statuses.
const (
	ReasonRoleNotPermitted     = "ROLE_NOT_PERMITTED"
	ReasonInvalidTransition    = "INVALID_TRANSITION"
	ReasonMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ReasonPersistenceFailure   = "PERSISTENCE_FAILURE"
	ReasonNotifyFailure        = "NOTIFY_FAILURE"
)

var (
	// ErrRoleNotPermitted means the actor's role has no transition rule for
	// the request's current status.
	ErrRoleNotPermitted = errors.New(ReasonRoleNotPermitted)

	// ErrInvalidTransition means the role may act on the current status but
	// the requested target is not reachable from it.
	ErrInvalidTransition = errors.New(ReasonInvalidTransition)

	// ErrMissingRequiredField means the transition is allowed but an
	// auxiliary field its side effects require was not supplied.
	ErrMissingRequiredField = errors.New(ReasonMissingRequiredField)
)
