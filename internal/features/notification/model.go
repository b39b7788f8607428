package notification

import (
	"time"

	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is one in-app notification for one user.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Event     string             `bson:"event" json:"event"`
	RequestID string             `bson:"request_id" json:"requestId"`
	RequestNo string             `bson:"request_no" json:"requestNo"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// FlowRule says who hears about one event and through which channels. An
// optional condition script (tengo) gets the request document and must leave
// a truthy `notify` variable for the rule to fire.
type FlowRule struct {
	Event     string          `bson:"event" json:"event"`
	Roles     []workflow.Role `bson:"roles" json:"roles"`
	Email     bool            `bson:"email" json:"email"`
	InApp     bool            `bson:"in_app" json:"inApp"`
	Condition string          `bson:"condition,omitempty" json:"condition,omitempty"`
}

// defaultFlowRules drive the dispatcher when no override is stored: a new
// submission wakes design, any later status change goes back to the author's
// role plus admins.
var defaultFlowRules = []FlowRule{
	{
		Event: workflow.EventRequestCreated,
		Roles: []workflow.Role{workflow.RoleDesign, workflow.RoleAdmin},
		Email: true,
		InApp: true,
	},
	{
		Event: workflow.EventRequestStatusChanged,
		Roles: []workflow.Role{workflow.RoleSales, workflow.RoleAdmin},
		Email: true,
		InApp: true,
	},
}

// DefaultFlowRules returns a copy of the built-in flow map.
func DefaultFlowRules() []FlowRule {
	out := make([]FlowRule, len(defaultFlowRules))
	copy(out, defaultFlowRules)
	return out
}
