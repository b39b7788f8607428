package feedback

import (
	"context"
	"errors"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/middleware"

	"go.mongodb.org/mongo-driver/bson"
)

type FeedbackService interface {
	Submit(ctx context.Context, subject, message, category string) (*Feedback, error)
	List(ctx context.Context, status FeedbackStatus) ([]Feedback, error)
	Triage(ctx context.Context, id string, status FeedbackStatus, response string) error
}

type FeedbackServiceImpl struct {
	Repo         FeedbackRepository
	AuditService audit.AuditService
}

func NewFeedbackService(repo FeedbackRepository, auditService audit.AuditService) FeedbackService {
	return &FeedbackServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *FeedbackServiceImpl) Submit(ctx context.Context, subject, message, category string) (*Feedback, error) {
	if subject == "" || message == "" {
		return nil, errors.New("subject and message are required")
	}

	createdBy := "anonymous"
	if claims, ok := middleware.ClaimsFromContext(ctx); ok {
		createdBy = claims.UserID
	}

	fb := &Feedback{
		Subject:   subject,
		Message:   message,
		Category:  category,
		Status:    FeedbackNew,
		CreatedBy: createdBy,
	}
	if err := s.Repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionFeedback, "feedback", fb.ID.Hex(), nil)
	return fb, nil
}

func (s *FeedbackServiceImpl) List(ctx context.Context, status FeedbackStatus) ([]Feedback, error) {
	filter := bson.M{}
	if status != "" {
		if !status.Valid() {
			return nil, errors.New("unknown feedback status")
		}
		filter["status"] = status
	}
	return s.Repo.List(ctx, filter)
}

func (s *FeedbackServiceImpl) Triage(ctx context.Context, id string, status FeedbackStatus, response string) error {
	if !status.Valid() {
		return errors.New("unknown feedback status")
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("feedback not found")
	}

	update := bson.M{"status": status}
	if response != "" {
		update["response"] = response
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionFeedback, "feedback", id, map[string]common_models.Change{
		"status": {Old: existing.Status, New: status},
	})
	return nil
}
