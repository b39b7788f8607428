package request

import (
	"time"

	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is a customer request as stored in the requests collection. Status,
// the auxiliary workflow fields and the history all live on the one document
// so a transition commits in a single write.
type Request struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestNo    string             `bson:"request_no" json:"requestNo"`
	Title        string             `bson:"title" json:"title"`
	CustomerName string             `bson:"customer_name" json:"customerName"`
	ProductType  string             `bson:"product_type,omitempty" json:"productType,omitempty"`
	Priority     string             `bson:"priority,omitempty" json:"priority,omitempty"`
	Quantity     int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Unit         string             `bson:"unit,omitempty" json:"unit,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Attachments  []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`

	Status workflow.Status `bson:"status" json:"status"`

	// Auxiliary fields written by transitions. The bson tags match the keys
	// the side-effect resolver emits.
	ClarificationComment    string     `bson:"clarificationComment,omitempty" json:"clarificationComment,omitempty"`
	AcceptanceMessage       string     `bson:"acceptanceMessage,omitempty" json:"acceptanceMessage,omitempty"`
	ExpectedDesignReplyDate *time.Time `bson:"expectedDesignReplyDate,omitempty" json:"expectedDesignReplyDate,omitempty"`
	DesignResultComments    string     `bson:"designResultComments,omitempty" json:"designResultComments,omitempty"`
	DesignResultAttachments []string   `bson:"designResultAttachments,omitempty" json:"designResultAttachments,omitempty"`
	CostingNotes            string     `bson:"costingNotes,omitempty" json:"costingNotes,omitempty"`

	History []workflow.TransitionEvent `bson:"history" json:"history"`

	CreatedBy string    `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// View projects the request for the dashboard aggregator.
func (r *Request) View() workflow.RequestView {
	return workflow.RequestView{Status: r.Status, CreatedBy: r.CreatedBy}
}
