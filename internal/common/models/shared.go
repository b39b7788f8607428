package models

import (
	"time"

	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionLogin        AuditAction = "LOGIN"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
	AuditActionSettings     AuditAction = "SETTINGS"
	AuditActionBackup       AuditAction = "BACKUP"
	AuditActionRestore      AuditAction = "RESTORE"
	AuditActionArchive      AuditAction = "ARCHIVE"
	AuditActionExport       AuditAction = "EXPORT"
	AuditActionFeedback     AuditAction = "FEEDBACK"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action     AuditAction        `bson:"action" json:"action"`
	Collection string             `bson:"collection" json:"collection"`
	RecordID   string             `bson:"record_id" json:"record_id"`
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	ActorName  string             `bson:"-" json:"actor_name,omitempty"` // Populated on read
	Changes    map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	Email     string             `bson:"email" json:"email"`
	FullName  string             `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Role      workflow.Role      `bson:"role" json:"role"` // exactly one of sales/design/costing/admin
	Status    string             `bson:"status" json:"status"` // active, inactive
	LastLogin *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
