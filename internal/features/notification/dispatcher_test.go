package notification

import (
	"context"
	"errors"
	"testing"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/request"
	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeNotifRepo struct {
	created []Notification
}

func (f *fakeNotifRepo) Create(ctx context.Context, n *Notification) error {
	f.created = append(f.created, *n)
	return nil
}
func (f *fakeNotifRepo) ListForUser(ctx context.Context, userID string, limit int64) ([]Notification, error) {
	return nil, nil
}
func (f *fakeNotifRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}
func (f *fakeNotifRepo) MarkRead(ctx context.Context, userID, id string) error { return nil }
func (f *fakeNotifRepo) MarkAllRead(ctx context.Context, userID string) error  { return nil }

type fakeRecipients struct {
	users map[workflow.Role][]common_models.User
}

func (f *fakeRecipients) ListByRoles(ctx context.Context, roles []workflow.Role) ([]common_models.User, error) {
	var out []common_models.User
	for _, role := range roles {
		out = append(out, f.users[role]...)
	}
	return out, nil
}

type fakeEmail struct {
	sent []string
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, to []string, subject, body string) error {
	f.sent = append(f.sent, to...)
	return f.err
}

type fakeFlows struct {
	rules []FlowRule
}

func (f *fakeFlows) FlowOverrides(ctx context.Context) ([]FlowRule, error) {
	return f.rules, nil
}

func userWithRole(role workflow.Role, email string) common_models.User {
	return common_models.User{
		ID:     primitive.NewObjectID(),
		Role:   role,
		Email:  email,
		Status: "active",
	}
}

func sampleRequest(priority string) *request.Request {
	return &request.Request{
		ID:           primitive.NewObjectID(),
		RequestNo:    "CRA-000042",
		Title:        "bracket redesign",
		CustomerName: "Acme",
		Priority:     priority,
		Status:       workflow.StatusSubmitted,
		CreatedBy:    "u1",
	}
}

func newDispatcher(repo *fakeNotifRepo, recipients *fakeRecipients, mail *fakeEmail, flows FlowSource) *Dispatcher {
	return NewDispatcher(repo, recipients, mail, flows, nil, zap.NewNop())
}

func TestDispatchFansOutToRuleRoles(t *testing.T) {
	repo := &fakeNotifRepo{}
	mail := &fakeEmail{}
	recipients := &fakeRecipients{users: map[workflow.Role][]common_models.User{
		workflow.RoleDesign: {userWithRole(workflow.RoleDesign, "d1@example.com")},
		workflow.RoleAdmin:  {userWithRole(workflow.RoleAdmin, "a1@example.com")},
		workflow.RoleSales:  {userWithRole(workflow.RoleSales, "s1@example.com")},
	}}
	d := newDispatcher(repo, recipients, mail, nil)

	err := d.DispatchRequestEvent(context.Background(), workflow.EventRequestCreated, sampleRequest(""))
	if err != nil {
		t.Fatalf("DispatchRequestEvent: %v", err)
	}

	// request_created goes to design and admin by default, never sales.
	if len(repo.created) != 2 {
		t.Fatalf("in-app notifications = %d, want 2", len(repo.created))
	}
	if len(mail.sent) != 2 {
		t.Errorf("emails sent = %v, want 2 recipients", mail.sent)
	}
	for _, addr := range mail.sent {
		if addr == "s1@example.com" {
			t.Error("sales received a request_created notification")
		}
	}
	if repo.created[0].RequestNo != "CRA-000042" {
		t.Errorf("requestNo = %q", repo.created[0].RequestNo)
	}
}

func TestDispatchUnknownEventIsIgnored(t *testing.T) {
	repo := &fakeNotifRepo{}
	d := newDispatcher(repo, &fakeRecipients{}, &fakeEmail{}, nil)

	if err := d.DispatchRequestEvent(context.Background(), "no_such_event", sampleRequest("")); err != nil {
		t.Fatalf("DispatchRequestEvent: %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("unknown event produced notifications: %v", repo.created)
	}
}

func TestDispatchConditionSuppressesRule(t *testing.T) {
	repo := &fakeNotifRepo{}
	recipients := &fakeRecipients{users: map[workflow.Role][]common_models.User{
		workflow.RoleDesign: {userWithRole(workflow.RoleDesign, "d1@example.com")},
	}}
	flows := &fakeFlows{rules: []FlowRule{{
		Event:     workflow.EventRequestCreated,
		Roles:     []workflow.Role{workflow.RoleDesign},
		InApp:     true,
		Condition: `notify = request.priority == "high"`,
	}}}
	d := newDispatcher(repo, recipients, &fakeEmail{}, flows)

	if err := d.DispatchRequestEvent(context.Background(), workflow.EventRequestCreated, sampleRequest("low")); err != nil {
		t.Fatalf("DispatchRequestEvent: %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("low priority request notified anyway: %v", repo.created)
	}

	if err := d.DispatchRequestEvent(context.Background(), workflow.EventRequestCreated, sampleRequest("high")); err != nil {
		t.Fatalf("DispatchRequestEvent: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("high priority request not notified, created = %d", len(repo.created))
	}
}

func TestDispatchOverrideReplacesDefaultRule(t *testing.T) {
	repo := &fakeNotifRepo{}
	mail := &fakeEmail{}
	recipients := &fakeRecipients{users: map[workflow.Role][]common_models.User{
		workflow.RoleCosting: {userWithRole(workflow.RoleCosting, "c1@example.com")},
		workflow.RoleDesign:  {userWithRole(workflow.RoleDesign, "d1@example.com")},
	}}
	flows := &fakeFlows{rules: []FlowRule{{
		Event: workflow.EventRequestCreated,
		Roles: []workflow.Role{workflow.RoleCosting},
		InApp: true,
	}}}
	d := newDispatcher(repo, recipients, mail, flows)

	if err := d.DispatchRequestEvent(context.Background(), workflow.EventRequestCreated, sampleRequest("")); err != nil {
		t.Fatalf("DispatchRequestEvent: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("in-app notifications = %d, want 1 (override roles only)", len(repo.created))
	}
	if len(mail.sent) != 0 {
		t.Errorf("override disabled email but %v were sent", mail.sent)
	}
}

func TestDispatchEmailFailureStillRecordsInApp(t *testing.T) {
	repo := &fakeNotifRepo{}
	mail := &fakeEmail{err: errors.New("smtp down")}
	recipients := &fakeRecipients{users: map[workflow.Role][]common_models.User{
		workflow.RoleDesign: {userWithRole(workflow.RoleDesign, "d1@example.com")},
		workflow.RoleAdmin:  {userWithRole(workflow.RoleAdmin, "a1@example.com")},
	}}
	d := newDispatcher(repo, recipients, mail, nil)

	err := d.DispatchRequestEvent(context.Background(), workflow.EventRequestCreated, sampleRequest(""))
	if err == nil {
		t.Fatal("expected email failure to surface")
	}
	if len(repo.created) != 2 {
		t.Errorf("in-app notifications = %d, want 2 despite email failure", len(repo.created))
	}
}
