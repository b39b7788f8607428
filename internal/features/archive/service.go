package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/config"
	"go-cra/internal/features/audit"
	"go-cra/internal/features/request"
	"go-cra/internal/workflow"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var ErrArchiveDisabled = errors.New("archive is not configured")

// ArchiveService mirrors finalized requests into a Postgres table so
// reporting tools can query them without touching the operational store.
type ArchiveService interface {
	RunArchive(ctx context.Context) (int, error)
	StartScheduler() error
	StopScheduler()
}

type ArchiveServiceImpl struct {
	Config       *config.Config
	RequestRepo  request.RequestRepository
	AuditService audit.AuditService
	Log          *zap.Logger
	scheduler    *cron.Cron
}

func NewArchiveService(cfg *config.Config, requestRepo request.RequestRepository, auditService audit.AuditService, log *zap.Logger) ArchiveService {
	return &ArchiveServiceImpl{
		Config:       cfg,
		RequestRepo:  requestRepo,
		AuditService: auditService,
		Log:          log,
	}
}

// RunArchive upserts every request in a final status into the archive table.
// Re-running is safe: rows conflict on id and get overwritten.
func (s *ArchiveServiceImpl) RunArchive(ctx context.Context) (int, error) {
	if s.Config.ArchiveDSN == "" {
		return 0, ErrArchiveDisabled
	}

	finalStatuses := []workflow.Status{}
	for _, st := range workflow.AllStatuses {
		if workflow.IsFinal(st) {
			finalStatuses = append(finalStatuses, st)
		}
	}

	requests, err := s.RequestRepo.List(ctx, bson.M{"status": bson.M{"$in": finalStatuses}})
	if err != nil {
		return 0, err
	}

	db, err := sql.Open("postgres", s.Config.ArchiveDSN)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := s.ensureTable(ctx, db); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(id, request_no, title, customer_name, product_type, priority, status, created_by, created_at, updated_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
		request_no = $2, title = $3, customer_name = $4, product_type = $5, priority = $6,
		status = $7, created_by = $8, created_at = $9, updated_at = $10, archived_at = $11`,
		s.Config.ArchiveTable)

	count := 0
	now := time.Now()
	for _, req := range requests {
		_, err := db.ExecContext(ctx, query,
			req.ID.Hex(), req.RequestNo, req.Title, req.CustomerName, req.ProductType,
			req.Priority, string(req.Status), req.CreatedBy, req.CreatedAt, req.UpdatedAt, now,
		)
		if err != nil {
			s.Log.Warn("archive upsert failed",
				zap.String("requestId", req.ID.Hex()), zap.Error(err))
			continue
		}
		count++
	}

	s.Log.Info("archive run completed", zap.Int("archived", count))
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionArchive, "requests", "archive_run", map[string]common_models.Change{
		"archived": {New: count},
	})

	return count, nil
}

func (s *ArchiveServiceImpl) ensureTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id            TEXT PRIMARY KEY,
		request_no    TEXT NOT NULL,
		title         TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		product_type  TEXT,
		priority      TEXT,
		status        TEXT NOT NULL,
		created_by    TEXT,
		created_at    TIMESTAMPTZ,
		updated_at    TIMESTAMPTZ,
		archived_at   TIMESTAMPTZ
	)`, s.Config.ArchiveTable))
	if err != nil {
		return fmt.Errorf("failed to ensure archive table: %w", err)
	}
	return nil
}

func (s *ArchiveServiceImpl) StartScheduler() error {
	if s.Config.ArchiveDSN == "" {
		return nil
	}
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Config.ArchiveSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.RunArchive(ctx); err != nil {
			s.Log.Error("scheduled archive failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid archive schedule %q: %w", s.Config.ArchiveSchedule, err)
	}
	s.scheduler.Start()
	return nil
}

func (s *ArchiveServiceImpl) StopScheduler() {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
}
