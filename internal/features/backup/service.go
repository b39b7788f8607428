package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/config"
	"go-cra/internal/features/audit"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const manifestFile = "manifest.json"

type manifest struct {
	Name      string    `json:"name"`
	Database  string    `json:"database"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupService interface {
	RunBackup(ctx context.Context) (*BackupSet, error)
	ListBackups(ctx context.Context) ([]BackupSet, error)
	Restore(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	StartScheduler() error
	StopScheduler()
}

type BackupServiceImpl struct {
	Config       *config.Config
	AuditService audit.AuditService
	Log          *zap.Logger
	scheduler    *cron.Cron
}

func NewBackupService(cfg *config.Config, auditService audit.AuditService, log *zap.Logger) BackupService {
	return &BackupServiceImpl{
		Config:       cfg,
		AuditService: auditService,
		Log:          log,
	}
}

// RunBackup shells out to mongodump, writes a manifest next to the dump and
// then applies the rotation policy.
func (s *BackupServiceImpl) RunBackup(ctx context.Context) (*BackupSet, error) {
	if err := os.MkdirAll(s.Config.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", s.Config.DBName, time.Now().Format("20060102T150405"))
	dir := filepath.Join(s.Config.BackupDir, name)

	cmd := exec.CommandContext(ctx, "mongodump",
		"--uri", s.Config.MongoURI,
		"--db", s.Config.DBName,
		"--out", dir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("mongodump failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	m := manifest{Name: name, Database: s.Config.DBName, CreatedAt: time.Now()}
	data, _ := json.MarshalIndent(m, "", "  ")
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	set := BackupSet{Name: name, CreatedAt: m.CreatedAt, SizeBytes: dirSize(dir)}

	s.Log.Info("backup completed", zap.String("name", name))
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionBackup, "backups", name, nil)

	if err := s.rotate(ctx); err != nil {
		s.Log.Warn("backup rotation failed", zap.Error(err))
	}

	return &set, nil
}

func (s *BackupServiceImpl) ListBackups(ctx context.Context) ([]BackupSet, error) {
	entries, err := os.ReadDir(s.Config.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupSet{}, nil
		}
		return nil, err
	}

	sets := []BackupSet{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.Config.BackupDir, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, manifestFile))
		if err != nil {
			continue // not a backup set
		}
		var m manifest
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		sets = append(sets, BackupSet{Name: m.Name, CreatedAt: m.CreatedAt, SizeBytes: dirSize(dir)})
	}
	return sets, nil
}

// Restore replays a dump with mongorestore, dropping existing collections
// first so the database matches the snapshot.
func (s *BackupServiceImpl) Restore(ctx context.Context, name string) error {
	dir, err := s.setDir(name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "mongorestore",
		"--uri", s.Config.MongoURI,
		"--nsInclude", s.Config.DBName+".*",
		"--drop",
		dir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("mongorestore failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	s.Log.Info("backup restored", zap.String("name", name))
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionRestore, "backups", name, nil)
	return nil
}

func (s *BackupServiceImpl) Delete(ctx context.Context, name string) error {
	dir, err := s.setDir(name)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// setDir validates the name against the backup directory so a crafted name
// cannot escape it.
func (s *BackupServiceImpl) setDir(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", errors.New("invalid backup name")
	}
	dir := filepath.Join(s.Config.BackupDir, name)
	if _, err := os.Stat(filepath.Join(dir, manifestFile)); err != nil {
		return "", errors.New("backup not found")
	}
	return dir, nil
}

func (s *BackupServiceImpl) rotate(ctx context.Context) error {
	sets, err := s.ListBackups(ctx)
	if err != nil {
		return err
	}
	_, drop := Retain(sets, time.Now())
	for _, set := range drop {
		if err := s.Delete(ctx, set.Name); err != nil {
			return err
		}
		s.Log.Info("backup rotated out", zap.String("name", set.Name))
	}
	return nil
}

func (s *BackupServiceImpl) StartScheduler() error {
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Config.BackupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := s.RunBackup(ctx); err != nil {
			s.Log.Error("scheduled backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.Config.BackupSchedule, err)
	}
	s.scheduler.Start()
	return nil
}

func (s *BackupServiceImpl) StopScheduler() {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
}

func dirSize(dir string) int64 {
	var size int64
	_ = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
