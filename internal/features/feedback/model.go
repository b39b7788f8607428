package feedback

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackStatus string

const (
	FeedbackNew      FeedbackStatus = "new"
	FeedbackTriaged  FeedbackStatus = "triaged"
	FeedbackResolved FeedbackStatus = "resolved"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackNew, FeedbackTriaged, FeedbackResolved:
		return true
	}
	return false
}

// Feedback is a user-submitted issue or suggestion about the tracker itself.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Status    FeedbackStatus     `bson:"status" json:"status"`
	Response  string             `bson:"response,omitempty" json:"response,omitempty"`
	CreatedBy string             `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
