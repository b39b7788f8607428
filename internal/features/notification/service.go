package notification

import (
	"context"
	"errors"

	"go-cra/internal/middleware"
)

type NotificationService interface {
	List(ctx context.Context, limit int64) ([]Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type NotificationServiceImpl struct {
	Repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) NotificationService {
	return &NotificationServiceImpl{Repo: repo}
}

func callerID(ctx context.Context) (string, error) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return "", errors.New("no authenticated user in context")
	}
	return claims.UserID, nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, limit int64) ([]Notification, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListForUser(ctx, userID, limit)
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return 0, err
	}
	return s.Repo.UnreadCount(ctx, userID)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	return s.Repo.MarkRead(ctx, userID, id)
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	return s.Repo.MarkAllRead(ctx, userID)
}
