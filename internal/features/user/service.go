package user

import (
	"context"
	"errors"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, username, password, email, fullName string, role workflow.Role) (*common_models.User, error)
	GetUser(ctx context.Context, id string) (*common_models.User, error)
	ListUsers(ctx context.Context) ([]common_models.User, error)
	UpdateUser(ctx context.Context, id string, email, fullName string) error
	UpdateUserRole(ctx context.Context, id string, role workflow.Role) error
	UpdateUserStatus(ctx context.Context, id string, status string) error
	ResetPassword(ctx context.Context, id string, password string) error
	DeleteUser(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	Repo         UserRepository
	AuditService audit.AuditService
}

func NewUserService(repo UserRepository, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, username, password, email, fullName string, role workflow.Role) (*common_models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if !role.Valid() {
		return nil, errors.New("unknown role")
	}

	existing, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &common_models.User{
		Username: username,
		Password: string(hashed),
		Email:    email,
		FullName: fullName,
		Role:     role,
		Status:   "active",
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "users", user.ID.Hex(), map[string]common_models.Change{
		"username": {New: username},
		"role":     {New: role},
	})

	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*common_models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]common_models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, email, fullName string) error {
	return s.Repo.Update(ctx, id, bson.M{"email": email, "full_name": fullName})
}

func (s *UserServiceImpl) UpdateUserRole(ctx context.Context, id string, role workflow.Role) error {
	if !role.Valid() {
		return errors.New("unknown role")
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("user not found")
	}

	if err := s.Repo.Update(ctx, id, bson.M{"role": role}); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "users", id, map[string]common_models.Change{
		"role": {Old: existing.Role, New: role},
	})
	return nil
}

func (s *UserServiceImpl) UpdateUserStatus(ctx context.Context, id string, status string) error {
	if status != "active" && status != "inactive" {
		return errors.New("invalid status")
	}
	return s.Repo.Update(ctx, id, bson.M{"status": status})
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, id string, password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, bson.M{"password": string(hashed)})
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "users", id, nil)
	return nil
}
