package auth

import (
	"context"
	"errors"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/features/user"
	"go-cra/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *common_models.User, error)
}

type AuthServiceImpl struct {
	UserRepo     user.UserRepository
	AuditService audit.AuditService
}

func NewAuthService(userRepo user.UserRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *common_models.User, error) {
	usr, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if usr == nil || usr.Status != "active" {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, usr.Username, usr.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	_ = s.UserRepo.Update(ctx, usr.ID.Hex(), bson.M{"last_login": now})
	usr.LastLogin = &now

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionLogin, "users", usr.ID.Hex(), nil)

	return token, usr, nil
}
