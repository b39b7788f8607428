package settings

import (
	"context"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/features/notification"
)

type SettingsService interface {
	GetOptionLists(ctx context.Context) (*OptionListsConfig, error)
	UpdateOptionLists(ctx context.Context, config OptionListsConfig) error
	GetNotificationFlows(ctx context.Context) (*NotificationFlowsConfig, error)
	UpdateNotificationFlows(ctx context.Context, config NotificationFlowsConfig) error

	// FlowOverrides satisfies the notification dispatcher's FlowSource.
	FlowOverrides(ctx context.Context) ([]notification.FlowRule, error)
}

type SettingsServiceImpl struct {
	Repo         SettingsRepository
	AuditService audit.AuditService
}

func NewSettingsService(repo SettingsRepository, auditService audit.AuditService) SettingsService {
	return &SettingsServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *SettingsServiceImpl) GetOptionLists(ctx context.Context) (*OptionListsConfig, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeOptionLists)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.OptionLists == nil {
		return DefaultOptionLists(), nil
	}
	return settings.OptionLists, nil
}

func (s *SettingsServiceImpl) UpdateOptionLists(ctx context.Context, config OptionListsConfig) error {
	oldConfig, _ := s.GetOptionLists(ctx)

	settings := &Settings{
		Type:        SettingsTypeOptionLists,
		OptionLists: &config,
		UpdatedAt:   time.Now(),
	}
	err := s.Repo.Upsert(ctx, settings)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSettings, "settings", "option_lists", map[string]common_models.Change{
			"option_lists": {
				Old: oldConfig,
				New: config,
			},
		})
	}
	return err
}

func (s *SettingsServiceImpl) GetNotificationFlows(ctx context.Context) (*NotificationFlowsConfig, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeNotificationFlows)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.NotificationFlows == nil {
		return &NotificationFlowsConfig{Rules: notification.DefaultFlowRules()}, nil
	}
	return settings.NotificationFlows, nil
}

func (s *SettingsServiceImpl) UpdateNotificationFlows(ctx context.Context, config NotificationFlowsConfig) error {
	oldConfig, _ := s.GetNotificationFlows(ctx)

	settings := &Settings{
		Type:              SettingsTypeNotificationFlows,
		NotificationFlows: &config,
		UpdatedAt:         time.Now(),
	}
	err := s.Repo.Upsert(ctx, settings)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSettings, "settings", "notification_flows", map[string]common_models.Change{
			"notification_flows": {
				Old: oldConfig,
				New: config,
			},
		})
	}
	return err
}

func (s *SettingsServiceImpl) FlowOverrides(ctx context.Context) ([]notification.FlowRule, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeNotificationFlows)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.NotificationFlows == nil {
		return nil, nil
	}
	return settings.NotificationFlows.Rules, nil
}
