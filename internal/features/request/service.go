package request

import (
	"context"
	"errors"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/middleware"
	"go-cra/internal/workflow"
	"go-cra/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Notifier fans a request event out to whoever the notification flow says
// should hear about it. A failed dispatch never rolls the transition back.
type Notifier interface {
	DispatchRequestEvent(ctx context.Context, event string, req *Request) error
}

type CreateInput struct {
	Title        string   `json:"title"`
	CustomerName string   `json:"customerName"`
	ProductType  string   `json:"productType"`
	Priority     string   `json:"priority"`
	Quantity     int      `json:"quantity"`
	Unit         string   `json:"unit"`
	Description  string   `json:"description"`
	Attachments  []string `json:"attachments"`
}

type RequestService interface {
	CreateRequest(ctx context.Context, in CreateInput) (*Request, error)
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequests(ctx context.Context, filterKey string, mine bool) ([]Request, error)
	UpdateContent(ctx context.Context, id string, adminEdit bool, in CreateInput) error
	DeleteRequest(ctx context.Context, id string) error
	Transition(ctx context.Context, id string, requested workflow.Status, adminEdit bool, in workflow.Input) (*Request, error)
	PermittedActions(ctx context.Context, id string, adminEdit bool) ([]workflow.Status, error)
	Snapshot(ctx context.Context) ([]workflow.RequestView, error)
}

type RequestServiceImpl struct {
	Repo         RequestRepository
	AuditService audit.AuditService
	Notifier     Notifier
	Log          *zap.Logger
}

func NewRequestService(repo RequestRepository, auditService audit.AuditService, notifier Notifier, log *zap.Logger) RequestService {
	return &RequestServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Notifier:     notifier,
		Log:          log,
	}
}

func actor(ctx context.Context) *utils.UserClaims {
	if claims, ok := middleware.ClaimsFromContext(ctx); ok {
		return claims
	}
	return &utils.UserClaims{UserID: "system", Role: workflow.RoleAdmin}
}

func (s *RequestServiceImpl) CreateRequest(ctx context.Context, in CreateInput) (*Request, error) {
	if in.Title == "" || in.CustomerName == "" {
		return nil, errors.New("title and customerName are required")
	}

	claims := actor(ctx)
	no, err := s.Repo.NextRequestNo(ctx)
	if err != nil {
		return nil, err
	}

	req := &Request{
		RequestNo:    no,
		Title:        in.Title,
		CustomerName: in.CustomerName,
		ProductType:  in.ProductType,
		Priority:     in.Priority,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Description:  in.Description,
		Attachments:  in.Attachments,
		Status:       workflow.StatusDraft,
		History:      []workflow.TransitionEvent{},
		CreatedBy:    claims.UserID,
	}

	if err := s.Repo.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "requests", req.ID.Hex(), map[string]common_models.Change{
		"title":  {New: in.Title},
		"status": {New: workflow.StatusDraft},
	})

	return req, nil
}

func (s *RequestServiceImpl) GetRequest(ctx context.Context, id string) (*Request, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListRequests returns requests, optionally narrowed to one dashboard bucket
// (filterKey) of the caller's role and/or to the caller's own requests.
func (s *RequestServiceImpl) ListRequests(ctx context.Context, filterKey string, mine bool) ([]Request, error) {
	claims := actor(ctx)

	filter := bson.M{}
	if filterKey != "" {
		for _, def := range workflow.Buckets(claims.Role) {
			if def.FilterKey == filterKey {
				filter["status"] = bson.M{"$in": def.Statuses}
				break
			}
		}
	}
	if mine {
		filter["created_by"] = claims.UserID
	}

	return s.Repo.List(ctx, filter)
}

func (s *RequestServiceImpl) UpdateContent(ctx context.Context, id string, adminEdit bool, in CreateInput) error {
	claims := actor(ctx)
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !workflow.CanEditContent(req.Status, claims.Role, adminEdit) {
		return workflow.ErrRoleNotPermitted
	}

	update := bson.M{
		"title":         in.Title,
		"customer_name": in.CustomerName,
		"product_type":  in.ProductType,
		"priority":      in.Priority,
		"quantity":      in.Quantity,
		"unit":          in.Unit,
		"description":   in.Description,
	}
	if in.Attachments != nil {
		update["attachments"] = in.Attachments
	}
	if err := s.Repo.UpdateContent(ctx, id, update); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "requests", id, map[string]common_models.Change{
		"title": {Old: req.Title, New: in.Title},
	})
	return nil
}

func (s *RequestServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "requests", id, nil)
	return nil
}

// Transition runs the full pipeline for a status change: authorize, resolve
// side effects, commit atomically, then audit and notify. Denials and missing
// required fields surface as the workflow sentinel errors.
func (s *RequestServiceImpl) Transition(ctx context.Context, id string, requested workflow.Status, adminEdit bool, in workflow.Input) (*Request, error) {
	claims := actor(ctx)

	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := workflow.Authorize(req.Status, claims.Role, adminEdit, requested)
	if !decision.Allowed {
		if decision.Reason == workflow.ReasonInvalidTransition {
			return nil, workflow.ErrInvalidTransition
		}
		return nil, workflow.ErrRoleNotPermitted
	}

	res, err := workflow.Resolve(req.Status, requested, in)
	if err != nil {
		return nil, err
	}

	event := workflow.NewTransitionEvent(requested, claims.Role, claims.UserID, in.Comment, time.Now())
	if err := s.Repo.CommitTransition(ctx, id, requested, res.FieldUpdates, event); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionStatusChange, "requests", id, map[string]common_models.Change{
		"status": {Old: req.Status, New: requested},
	})

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.NotifyEvent != "" && s.Notifier != nil {
		if err := s.Notifier.DispatchRequestEvent(ctx, res.NotifyEvent, updated); err != nil {
			s.Log.Warn("notification dispatch failed",
				zap.String("requestId", id),
				zap.String("event", res.NotifyEvent),
				zap.Error(err))
		}
	}

	return updated, nil
}

func (s *RequestServiceImpl) PermittedActions(ctx context.Context, id string, adminEdit bool) ([]workflow.Status, error) {
	claims := actor(ctx)
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	targets := workflow.PermittedTargets(req.Status, claims.Role, adminEdit)
	if targets == nil {
		targets = []workflow.Status{}
	}
	return targets, nil
}

// Snapshot projects every request for the dashboard aggregator.
func (s *RequestServiceImpl) Snapshot(ctx context.Context) ([]workflow.RequestView, error) {
	reqs, err := s.Repo.List(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	views := make([]workflow.RequestView, len(reqs))
	for i := range reqs {
		views[i] = reqs[i].View()
	}
	return views, nil
}
