package request

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/middleware"
	"go-cra/internal/workflow"
	"go-cra/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepo struct {
	requests map[string]*Request
	seq      int64
	failNext error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: map[string]*Request{}}
}

func (f *fakeRepo) Create(ctx context.Context, req *Request) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID.Hex()] = req
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	cp.History = append([]workflow.TransitionEvent{}, req.History...)
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter bson.M) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeRepo) UpdateContent(ctx context.Context, id string, update bson.M) error {
	req, ok := f.requests[id]
	if !ok {
		return ErrNotFound
	}
	if title, ok := update["title"].(string); ok {
		req.Title = title
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return ErrNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRepo) CommitTransition(ctx context.Context, id string, status workflow.Status, fields map[string]any, event workflow.TransitionEvent) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	req, ok := f.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	for k, v := range fields {
		switch k {
		case "clarificationComment":
			req.ClarificationComment = v.(string)
		case "acceptanceMessage":
			req.AcceptanceMessage = v.(string)
		case "expectedDesignReplyDate":
			t := v.(time.Time)
			req.ExpectedDesignReplyDate = &t
		case "designResultComments":
			req.DesignResultComments = v.(string)
		case "designResultAttachments":
			req.DesignResultAttachments = v.([]string)
		case "costingNotes":
			req.CostingNotes = v.(string)
		}
	}
	req.History = workflow.AppendHistory(req.History, event)
	return nil
}

func (f *fakeRepo) NextRequestNo(ctx context.Context) (string, error) {
	f.seq++
	return "CRA-000001", nil
}

type fakeAudit struct {
	actions []common_models.AuditAction
}

func (f *fakeAudit) LogChange(ctx context.Context, action common_models.AuditAction, collection, recordID string, changes map[string]common_models.Change) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type fakeNotifier struct {
	events []string
	err    error
}

func (f *fakeNotifier) DispatchRequestEvent(ctx context.Context, event string, req *Request) error {
	f.events = append(f.events, event)
	return f.err
}

func ctxWithRole(role workflow.Role, userID string) context.Context {
	return context.WithValue(context.Background(), middleware.ClaimsContextKey, &utils.UserClaims{
		UserID:   userID,
		Username: string(role) + "-user",
		Role:     role,
	})
}

func newService(repo *fakeRepo, notifier *fakeNotifier) (RequestService, *fakeAudit) {
	auditSvc := &fakeAudit{}
	return NewRequestService(repo, auditSvc, notifier, zap.NewNop()), auditSvc
}

func seed(t *testing.T, repo *fakeRepo, status workflow.Status, createdBy string) string {
	t.Helper()
	req := &Request{
		RequestNo:    "CRA-000001",
		Title:        "enclosure rework",
		CustomerName: "Acme",
		Status:       status,
		History:      []workflow.TransitionEvent{},
		CreatedBy:    createdBy,
	}
	if err := repo.Create(context.Background(), req); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return req.ID.Hex()
}

func TestCreateRequestStartsAsDraft(t *testing.T) {
	repo := newFakeRepo()
	svc, auditSvc := newService(repo, &fakeNotifier{})

	req, err := svc.CreateRequest(ctxWithRole(workflow.RoleSales, "u1"), CreateInput{Title: "t", CustomerName: "c"})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.Status != workflow.StatusDraft {
		t.Errorf("status = %q, want draft", req.Status)
	}
	if len(req.History) != 0 {
		t.Errorf("history length = %d, want 0", len(req.History))
	}
	if req.CreatedBy != "u1" {
		t.Errorf("createdBy = %q, want u1", req.CreatedBy)
	}
	if len(auditSvc.actions) != 1 || auditSvc.actions[0] != common_models.AuditActionCreate {
		t.Errorf("audit actions = %v", auditSvc.actions)
	}
}

func TestSubmitDraftEmitsCreatedEvent(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc, _ := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusDraft, "u1")

	req, err := svc.Transition(ctxWithRole(workflow.RoleSales, "u1"), id, workflow.StatusSubmitted, false, workflow.Input{})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if req.Status != workflow.StatusSubmitted {
		t.Errorf("status = %q, want submitted", req.Status)
	}
	if len(req.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(req.History))
	}
	entry := req.History[0]
	if entry.Status != workflow.StatusSubmitted || entry.ActorRole != workflow.RoleSales || entry.ActorID != "u1" {
		t.Errorf("history entry = %+v", entry)
	}
	if len(notifier.events) != 1 || notifier.events[0] != workflow.EventRequestCreated {
		t.Errorf("events = %v, want [request_created]", notifier.events)
	}
}

func TestClarificationRequiresComment(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	_, err := svc.Transition(ctxWithRole(workflow.RoleDesign, "d1"), id, workflow.StatusClarificationNeeded, false, workflow.Input{})
	if !errors.Is(err, workflow.ErrMissingRequiredField) {
		t.Fatalf("err = %v, want ErrMissingRequiredField", err)
	}

	// Nothing may be committed on a failed resolve.
	stored, _ := repo.GetByID(context.Background(), id)
	if stored.Status != workflow.StatusUnderReview || len(stored.History) != 0 {
		t.Errorf("request mutated on failed resolve: %+v", stored)
	}
}

func TestClarificationPersistsComment(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc, _ := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	req, err := svc.Transition(ctxWithRole(workflow.RoleDesign, "d1"), id, workflow.StatusClarificationNeeded, false, workflow.Input{Comment: "need drawings"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if req.ClarificationComment != "need drawings" {
		t.Errorf("clarificationComment = %q", req.ClarificationComment)
	}
	if req.History[0].Comment != "need drawings" {
		t.Errorf("history comment = %q", req.History[0].Comment)
	}
	if len(notifier.events) != 1 || notifier.events[0] != workflow.EventRequestStatusChanged {
		t.Errorf("events = %v, want [request_status_changed]", notifier.events)
	}
}

func TestCostingDeniedOnDraft(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc, auditSvc := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusDraft, "u1")

	_, err := svc.Transition(ctxWithRole(workflow.RoleCosting, "c1"), id, workflow.StatusInCosting, false, workflow.Input{})
	if !errors.Is(err, workflow.ErrRoleNotPermitted) {
		t.Fatalf("err = %v, want ErrRoleNotPermitted", err)
	}
	if len(notifier.events) != 0 {
		t.Errorf("denied transition dispatched events: %v", notifier.events)
	}
	if len(auditSvc.actions) != 0 {
		t.Errorf("denied transition wrote audit entries: %v", auditSvc.actions)
	}
}

func TestDesignCannotApprove(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	_, err := svc.Transition(ctxWithRole(workflow.RoleDesign, "d1"), id, workflow.StatusGMApproved, false, workflow.Input{})
	if !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestAdminEditModeUnlocksFinalStatus(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusGMApproved, "u1")

	// Without edit mode even an admin is bound by the table.
	_, err := svc.Transition(ctxWithRole(workflow.RoleAdmin, "a1"), id, workflow.StatusSalesFollowup, false, workflow.Input{})
	if !errors.Is(err, workflow.ErrRoleNotPermitted) {
		t.Fatalf("err without edit mode = %v, want ErrRoleNotPermitted", err)
	}

	req, err := svc.Transition(ctxWithRole(workflow.RoleAdmin, "a1"), id, workflow.StatusSalesFollowup, true, workflow.Input{})
	if err != nil {
		t.Fatalf("edit-mode transition: %v", err)
	}
	if req.Status != workflow.StatusSalesFollowup {
		t.Errorf("status = %q, want sales_followup", req.Status)
	}
}

func TestSameStatusWriteAppendsHistoryWithoutEvent(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc, _ := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	req, err := svc.Transition(ctxWithRole(workflow.RoleDesign, "d1"), id, workflow.StatusUnderReview, false, workflow.Input{Comment: "still checking"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if len(req.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(req.History))
	}
	if len(notifier.events) != 0 {
		t.Errorf("no-op write dispatched events: %v", notifier.events)
	}
}

func TestNotifyFailureDoesNotRollBack(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc, _ := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusDraft, "u1")

	req, err := svc.Transition(ctxWithRole(workflow.RoleSales, "u1"), id, workflow.StatusSubmitted, false, workflow.Input{})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if req.Status != workflow.StatusSubmitted {
		t.Errorf("status = %q, want submitted despite notify failure", req.Status)
	}
}

func TestCommitFailureSurfacesAndSkipsNotify(t *testing.T) {
	repo := newFakeRepo()
	repo.failNext = errors.New("write conflict")
	notifier := &fakeNotifier{}
	svc, _ := newService(repo, notifier)
	id := seed(t, repo, workflow.StatusDraft, "u1")

	_, err := svc.Transition(ctxWithRole(workflow.RoleSales, "u1"), id, workflow.StatusSubmitted, false, workflow.Input{})
	if err == nil {
		t.Fatal("expected commit error")
	}
	if len(notifier.events) != 0 {
		t.Errorf("failed commit dispatched events: %v", notifier.events)
	}
}

func TestFeasibilityConfirmedPersistsBothFields(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	req, err := svc.Transition(ctxWithRole(workflow.RoleDesign, "d1"), id, workflow.StatusFeasibilityConfirmed, false, workflow.Input{
		AcceptanceMessage:       "feasible with minor tooling changes",
		ExpectedDesignReplyDate: &due,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if req.AcceptanceMessage == "" || req.ExpectedDesignReplyDate == nil || !req.ExpectedDesignReplyDate.Equal(due) {
		t.Errorf("auxiliary fields not persisted: %+v", req)
	}
}

func TestPermittedActionsReflectRole(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusDraft, "u1")

	targets, err := svc.PermittedActions(ctxWithRole(workflow.RoleSales, "u1"), id, false)
	if err != nil {
		t.Fatalf("PermittedActions: %v", err)
	}
	if len(targets) != 1 || targets[0] != workflow.StatusSubmitted {
		t.Errorf("sales targets on draft = %v, want [submitted]", targets)
	}

	targets, err = svc.PermittedActions(ctxWithRole(workflow.RoleCosting, "c1"), id, false)
	if err != nil {
		t.Fatalf("PermittedActions: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("costing targets on draft = %v, want none", targets)
	}
}

func TestUpdateContentGatedByStatusAndRole(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo, &fakeNotifier{})
	id := seed(t, repo, workflow.StatusUnderReview, "u1")

	err := svc.UpdateContent(ctxWithRole(workflow.RoleSales, "u1"), id, false, CreateInput{Title: "new", CustomerName: "Acme"})
	if !errors.Is(err, workflow.ErrRoleNotPermitted) {
		t.Fatalf("err = %v, want ErrRoleNotPermitted", err)
	}

	id2 := seed(t, repo, workflow.StatusDraft, "u1")
	if err := svc.UpdateContent(ctxWithRole(workflow.RoleSales, "u1"), id2, false, CreateInput{Title: "new", CustomerName: "Acme"}); err != nil {
		t.Fatalf("UpdateContent on draft: %v", err)
	}
}
