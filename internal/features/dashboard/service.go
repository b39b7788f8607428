package dashboard

import (
	"context"

	"go-cra/internal/middleware"
	"go-cra/internal/workflow"
)

// RequestSource supplies the snapshot the aggregator runs over.
type RequestSource interface {
	Snapshot(ctx context.Context) ([]workflow.RequestView, error)
}

type Summary struct {
	Role  workflow.Role  `json:"role"`
	Mine  bool           `json:"mine"`
	Total int            `json:"total"`
	KPIs  []workflow.KPI `json:"kpis"`
}

type DashboardService interface {
	Summarize(ctx context.Context, mine bool) (*Summary, error)
}

type DashboardServiceImpl struct {
	Source RequestSource
}

func NewDashboardService(source RequestSource) DashboardService {
	return &DashboardServiceImpl{Source: source}
}

// Summarize recomputes the caller's role dashboard from a fresh snapshot.
func (s *DashboardServiceImpl) Summarize(ctx context.Context, mine bool) (*Summary, error) {
	claims, _ := middleware.ClaimsFromContext(ctx)
	role := workflow.RoleAdmin
	actorID := ""
	if claims != nil {
		role = claims.Role
		actorID = claims.UserID
	}

	views, err := s.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filter := workflow.OwnershipAll
	if mine {
		filter = workflow.OwnershipMine
	}

	kpis := workflow.Aggregate(views, role, filter, actorID)
	total := 0
	for _, k := range kpis {
		total += k.Count
	}

	return &Summary{Role: role, Mine: mine, Total: total, KPIs: kpis}, nil
}
